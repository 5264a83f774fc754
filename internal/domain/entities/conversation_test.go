package entities

import "testing"

func TestMerge_FillsOnlyUnsetFields(t *testing.T) {
	prior := ExtractedFields{
		Service:           "coupe_homme",
		ServiceConfidence: 0.9,
	}
	incoming := ExtractedFields{
		Service:           "barbe",
		ServiceConfidence: 0.9,
		Date:              "mardi",
		DateConfidence:    0.8,
	}

	merged := prior.Merge(incoming)

	if merged.Service != "coupe_homme" {
		t.Errorf("set field was overwritten: got %q", merged.Service)
	}
	if merged.Date != "mardi" {
		t.Errorf("unset field was not filled: got %q", merged.Date)
	}
	if merged.DateConfidence != 0.8 {
		t.Errorf("confidence should travel with the field: got %f", merged.DateConfidence)
	}
}

func TestMerge_IsIdempotent(t *testing.T) {
	fields := ExtractedFields{Service: "barbe", Date: "jeudi", Time: "soir"}
	if merged := fields.Merge(fields); merged != fields {
		t.Errorf("merging a snapshot with itself changed it: %+v", merged)
	}
}

func TestPopulatedCount(t *testing.T) {
	tests := []struct {
		fields ExtractedFields
		want   int
	}{
		{ExtractedFields{}, 0},
		{ExtractedFields{Service: "barbe"}, 1},
		{ExtractedFields{Service: "barbe", Date: "mardi", Time: "matin"}, 3},
		{ExtractedFields{Service: "barbe", Date: "mardi", Time: "matin", Barbier: "marcel", Name: "Jean Roy"}, 5},
	}
	for _, tt := range tests {
		if got := tt.fields.PopulatedCount(); got != tt.want {
			t.Errorf("%+v: expected %d, got %d", tt.fields, tt.want, got)
		}
	}
}

func TestIsComplete_BarbierOptional(t *testing.T) {
	fields := ExtractedFields{Service: "barbe", Date: "mardi", Time: "matin", Name: "Jean Roy"}
	if !fields.IsComplete() {
		t.Error("booking without a barber choice should be complete")
	}

	fields.Name = ""
	if fields.IsComplete() {
		t.Error("booking without a name should be incomplete")
	}
}
