package services

import (
	"strings"
	"testing"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
)

func newTestComposer() *ResponseComposer {
	return NewResponseComposer(DefaultCatalog())
}

func TestCompose_AskService(t *testing.T) {
	c := newTestComposer()
	reply := c.Compose(entities.ActionAskService, entities.ExtractedFields{})
	if !strings.Contains(reply, "Quel service") {
		t.Errorf("expected service question, got %q", reply)
	}
}

func TestCompose_QuestionChainIsNonEmpty(t *testing.T) {
	c := newTestComposer()
	actions := []entities.NextAction{
		entities.ActionAskService,
		entities.ActionAskDate,
		entities.ActionAskTime,
		entities.ActionAskName,
	}
	for _, action := range actions {
		if c.Compose(action, entities.ExtractedFields{}) == "" {
			t.Errorf("empty reply for action %s", action)
		}
	}
}

func TestCompose_ConfirmationSummary(t *testing.T) {
	c := newTestComposer()
	fields := entities.ExtractedFields{
		Service: "coupe_homme",
		Date:    "mardi",
		Time:    "matin",
		Name:    "Jean Tremblay",
	}
	reply := c.Compose(entities.ActionConfirmBooking, fields)

	for _, want := range []string{"Jean Tremblay", "Coupe homme", "mardi", "le matin", "OUI"} {
		if !strings.Contains(reply, want) {
			t.Errorf("summary missing %q: %q", want, reply)
		}
	}
	if strings.Contains(reply, "avec") {
		t.Errorf("summary must not mention a barber when none was given: %q", reply)
	}
}

func TestCompose_ConfirmationSummaryWithBarbier(t *testing.T) {
	c := newTestComposer()
	fields := entities.ExtractedFields{
		Service: "coupe_barbe",
		Date:    "samedi",
		Time:    "apres_midi",
		Barbier: "stephane",
		Name:    "Pierre Lavoie",
	}
	reply := c.Compose(entities.ActionConfirmBooking, fields)
	if !strings.Contains(reply, "avec Stéphane") {
		t.Errorf("expected barber in summary, got %q", reply)
	}
	if !strings.Contains(reply, "l'après-midi") {
		t.Errorf("expected time label, got %q", reply)
	}
}

func TestCompose_PriceList(t *testing.T) {
	c := newTestComposer()
	reply := c.Compose(entities.ActionProvidePrices, entities.ExtractedFields{})

	for _, want := range []string{"Coupe homme: 35$", "Coupe femme: 45$", "Coupe et barbe: 50$", "Barbe: 25$", "Coloration: 65$"} {
		if !strings.Contains(reply, want) {
			t.Errorf("price list missing %q: %q", want, reply)
		}
	}
	if !strings.Contains(reply, "rendez-vous") {
		t.Errorf("price list should pivot to booking, got %q", reply)
	}
}

func TestCompose_Hours(t *testing.T) {
	c := newTestComposer()
	reply := c.Compose(entities.ActionProvideHours, entities.ExtractedFields{})
	if !strings.Contains(reply, "mardi au vendredi") || !strings.Contains(reply, "samedi") {
		t.Errorf("unexpected hours reply: %q", reply)
	}
}

func TestCompose_ProcessConfirmation_Complete(t *testing.T) {
	c := newTestComposer()
	fields := entities.ExtractedFields{
		Service: "barbe",
		Date:    "jeudi",
		Time:    "soir",
		Name:    "Marc Gagnon",
	}
	reply := c.Compose(entities.ActionProcessConfirm, fields)
	if !strings.Contains(reply, "C'est confirmé Marc Gagnon") {
		t.Errorf("expected confirmation, got %q", reply)
	}
	if !strings.Contains(reply, "jeudi le soir") {
		t.Errorf("expected date and time, got %q", reply)
	}
}

func TestCompose_ProcessConfirmation_IncompleteResumesQuestions(t *testing.T) {
	c := newTestComposer()
	tests := []struct {
		fields entities.ExtractedFields
		want   string
	}{
		{entities.ExtractedFields{}, "Quel service"},
		{entities.ExtractedFields{Service: "barbe"}, "Quelle journée"},
		{entities.ExtractedFields{Service: "barbe", Date: "jeudi"}, "matin"},
		{entities.ExtractedFields{Service: "barbe", Date: "jeudi", Time: "soir"}, "quel nom"},
	}
	for _, tt := range tests {
		reply := c.Compose(entities.ActionProcessConfirm, tt.fields)
		if !strings.Contains(reply, tt.want) {
			t.Errorf("fields %+v: expected reply containing %q, got %q", tt.fields, tt.want, reply)
		}
	}
}

func TestCompose_Clarification(t *testing.T) {
	c := newTestComposer()
	reply := c.Compose(entities.ActionAskClarification, entities.ExtractedFields{})
	if !strings.Contains(reply, "pas bien compris") {
		t.Errorf("unexpected clarification reply: %q", reply)
	}
}

func TestCompose_UnknownCodesFallBackToRawValue(t *testing.T) {
	c := newTestComposer()
	fields := entities.ExtractedFields{
		Service: "mystere",
		Date:    "dimanche",
		Time:    "nuit",
		Name:    "Jean Roy",
	}
	reply := c.Compose(entities.ActionConfirmBooking, fields)
	for _, want := range []string{"mystere", "dimanche", "nuit"} {
		if !strings.Contains(reply, want) {
			t.Errorf("expected raw code %q in %q", want, reply)
		}
	}
}
