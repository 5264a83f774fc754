package entities

import (
	"time"
)

// Intent represents the caller's high-level purpose for one utterance
type Intent string

const (
	IntentBooking      Intent = "booking"
	IntentPricing      Intent = "pricing"
	IntentHours        Intent = "hours"
	IntentCancelModify Intent = "cancel_modify"
	IntentConfirmation Intent = "confirmation"
	IntentNegation     Intent = "negation"
	IntentGeneral      Intent = "general"
)

// NextAction is the recommended step after analyzing a turn
type NextAction string

const (
	ActionAskService       NextAction = "ask_service"
	ActionAskDate          NextAction = "ask_date"
	ActionAskTime          NextAction = "ask_time"
	ActionAskName          NextAction = "ask_name"
	ActionConfirmBooking   NextAction = "confirm_booking"
	ActionProvidePrices    NextAction = "provide_prices"
	ActionProvideHours     NextAction = "provide_hours"
	ActionProcessConfirm   NextAction = "process_confirmation"
	ActionAskClarification NextAction = "ask_clarification"
)

// Field names used in missing-field lists and pattern tables
const (
	FieldService = "service"
	FieldDate    = "date"
	FieldTime    = "time"
	FieldBarbier = "barbier"
	FieldName    = "name"
)

// ExtractedFields is the slot-filling state accumulated across the turns of
// one conversation. A field that is set is never overwritten by a later turn;
// merges are additive only.
type ExtractedFields struct {
	Service           string  `json:"service,omitempty"`
	ServiceConfidence float64 `json:"service_confidence,omitempty"`
	Date              string  `json:"date,omitempty"`
	DateConfidence    float64 `json:"date_confidence,omitempty"`
	Time              string  `json:"time,omitempty"`
	TimeConfidence    float64 `json:"time_confidence,omitempty"`
	Barbier           string  `json:"barbier,omitempty"`
	BarbierConfidence float64 `json:"barbier_confidence,omitempty"`
	Name              string  `json:"name,omitempty"`
	NameConfidence    float64 `json:"name_confidence,omitempty"`
}

// Merge fills unset fields of f from other and returns the result. Fields
// already present in f keep their value and confidence.
func (f ExtractedFields) Merge(other ExtractedFields) ExtractedFields {
	if f.Service == "" && other.Service != "" {
		f.Service = other.Service
		f.ServiceConfidence = other.ServiceConfidence
	}
	if f.Date == "" && other.Date != "" {
		f.Date = other.Date
		f.DateConfidence = other.DateConfidence
	}
	if f.Time == "" && other.Time != "" {
		f.Time = other.Time
		f.TimeConfidence = other.TimeConfidence
	}
	if f.Barbier == "" && other.Barbier != "" {
		f.Barbier = other.Barbier
		f.BarbierConfidence = other.BarbierConfidence
	}
	if f.Name == "" && other.Name != "" {
		f.Name = other.Name
		f.NameConfidence = other.NameConfidence
	}
	return f
}

// PopulatedCount returns how many fields are set
func (f ExtractedFields) PopulatedCount() int {
	count := 0
	for _, v := range []string{f.Service, f.Date, f.Time, f.Barbier, f.Name} {
		if v != "" {
			count++
		}
	}
	return count
}

// IsComplete reports whether every field required for a booking is set.
// Barbier is optional and not part of the required set.
func (f ExtractedFields) IsComplete() bool {
	return f.Service != "" && f.Date != "" && f.Time != "" && f.Name != ""
}

// AnalysisResult is the outcome of analyzing a single turn
type AnalysisResult struct {
	OriginalInput   string          `json:"original_input"`
	NormalizedInput string          `json:"normalized_input"`
	ExtractedFields ExtractedFields `json:"extracted_fields"`
	DetectedIntent  Intent          `json:"detected_intent"`
	Confidence      float64         `json:"confidence"`
	MissingFields   []string        `json:"missing_fields,omitempty"`
	NextAction      NextAction      `json:"next_action"`
	Recommendations []string        `json:"recommendations,omitempty"`
}

// Session is the persisted conversational state for one phone number
type Session struct {
	SessionKey     string          `json:"session_key"`
	ExtractedInfo  ExtractedFields `json:"extracted_info"`
	DetectedIntent Intent          `json:"detected_intent"`
	Confidence     float64         `json:"confidence"`
	CreatedAt      time.Time       `json:"created_at"`
	LastUpdatedAt  time.Time       `json:"last_updated_at"`
}
