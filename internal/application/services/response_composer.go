package services

import (
	"fmt"
	"strings"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
)

// ResponseComposer renders the French reply for a turn from the recommended
// next action and the current field snapshot. Replies are fixed templates;
// there is no generation beyond interpolation.
type ResponseComposer struct {
	catalog       []entities.ServiceOffering
	serviceLabels map[string]string
	dateLabels    map[string]string
	timeLabels    map[string]string
	barbierLabels map[string]string
}

// DefaultCatalog returns the academy's service offering with prices in CAD
func DefaultCatalog() []entities.ServiceOffering {
	return []entities.ServiceOffering{
		{Code: "coupe_homme", Label: "Coupe homme", Price: 35},
		{Code: "coupe_femme", Label: "Coupe femme", Price: 45},
		{Code: "coupe_barbe", Label: "Coupe et barbe", Price: 50},
		{Code: "barbe", Label: "Barbe", Price: 25},
		{Code: "coloration", Label: "Coloration", Price: 65},
	}
}

// NewResponseComposer creates a composer over a service catalog
func NewResponseComposer(catalog []entities.ServiceOffering) *ResponseComposer {
	serviceLabels := make(map[string]string, len(catalog))
	for _, offering := range catalog {
		serviceLabels[offering.Code] = offering.Label
	}
	return &ResponseComposer{
		catalog:       catalog,
		serviceLabels: serviceLabels,
		dateLabels: map[string]string{
			"mardi":       "mardi",
			"mercredi":    "mercredi",
			"jeudi":       "jeudi",
			"vendredi":    "vendredi",
			"samedi":      "samedi",
			"aujourd_hui": "aujourd'hui",
			"demain":      "demain",
		},
		timeLabels: map[string]string{
			"matin":      "le matin",
			"midi":       "le midi",
			"apres_midi": "l'après-midi",
			"soir":       "le soir",
		},
		barbierLabels: map[string]string{
			"marcel":    "Marcel",
			"alexandre": "Alexandre",
			"stephane":  "Stéphane",
			"vincent":   "Vincent",
		},
	}
}

// Compose renders the outbound reply for a next action. The question order
// for booking turns is service, date, time, name; the barber is optional and
// only echoed back when the caller volunteered one.
func (c *ResponseComposer) Compose(action entities.NextAction, fields entities.ExtractedFields) string {
	switch action {
	case entities.ActionAskService:
		return "Salut! Ici Marcel de l'Académie. Quel service tu veux? Coupe homme, coupe femme, coupe et barbe, barbe ou coloration?"
	case entities.ActionAskDate:
		return "Parfait! Quelle journée te convient? On est ouvert du mardi au samedi."
	case entities.ActionAskTime:
		return "Super! Tu préfères le matin, le midi, l'après-midi ou le soir?"
	case entities.ActionAskName:
		return "C'est noté! C'est à quel nom?"
	case entities.ActionConfirmBooking:
		return c.confirmationSummary(fields)
	case entities.ActionProvidePrices:
		return c.priceList()
	case entities.ActionProvideHours:
		return "On est ouvert du mardi au vendredi de 9h à 18h et le samedi de 9h à 16h. Fermé dimanche et lundi."
	case entities.ActionProcessConfirm:
		return c.processConfirmation(fields)
	default:
		return "Désolé, j'ai pas bien compris. Tu veux prendre un rendez-vous, connaître nos prix ou nos heures d'ouverture?"
	}
}

func (c *ResponseComposer) confirmationSummary(fields entities.ExtractedFields) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parfait %s! Je récapitule: %s, %s %s",
		fields.Name,
		c.serviceLabel(fields.Service),
		c.dateLabel(fields.Date),
		c.timeLabel(fields.Time),
	)
	if fields.Barbier != "" {
		fmt.Fprintf(&b, " avec %s", c.barbierLabel(fields.Barbier))
	}
	b.WriteString(". C'est bon pour toi? Réponds OUI pour confirmer.")
	return b.String()
}

func (c *ResponseComposer) processConfirmation(fields entities.ExtractedFields) string {
	if !fields.IsComplete() {
		// confirmed before all slots were filled; resume the question chain
		return c.Compose(c.firstMissingAction(fields), fields)
	}
	return fmt.Sprintf("C'est confirmé %s! On t'attend %s %s. À bientôt!",
		fields.Name,
		c.dateLabel(fields.Date),
		c.timeLabel(fields.Time),
	)
}

func (c *ResponseComposer) firstMissingAction(fields entities.ExtractedFields) entities.NextAction {
	switch {
	case fields.Service == "":
		return entities.ActionAskService
	case fields.Date == "":
		return entities.ActionAskDate
	case fields.Time == "":
		return entities.ActionAskTime
	default:
		return entities.ActionAskName
	}
}

func (c *ResponseComposer) priceList() string {
	var b strings.Builder
	b.WriteString("Nos prix:")
	for _, offering := range c.catalog {
		fmt.Fprintf(&b, "\n- %s: %d$", offering.Label, offering.Price)
	}
	b.WriteString("\nTu veux prendre un rendez-vous?")
	return b.String()
}

func (c *ResponseComposer) serviceLabel(code string) string {
	if label, ok := c.serviceLabels[code]; ok {
		return label
	}
	return code
}

func (c *ResponseComposer) dateLabel(code string) string {
	if label, ok := c.dateLabels[code]; ok {
		return label
	}
	return code
}

func (c *ResponseComposer) timeLabel(code string) string {
	if label, ok := c.timeLabels[code]; ok {
		return label
	}
	return code
}

func (c *ResponseComposer) barbierLabel(code string) string {
	if label, ok := c.barbierLabels[code]; ok {
		return label
	}
	return code
}
