package services

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
)

const (
	confidenceFieldWeight = 0.5
	// fixed normalizing denominator for the field portion of the score;
	// larger than the actual field count so a typical booking stays below 1.0
	confidenceFieldDenominator = 6.0
	confidenceIntentBonus      = 0.3
	confidenceColloquialBonus  = 0.2

	serviceConfidence = 0.9
	barbierConfidence = 0.9
	dateConfidence    = 0.8
	timeConfidence    = 0.8
	nameConfidence    = 0.6
)

var (
	unrecognizedCounterOnce sync.Once
	unrecognizedCounter     metric.Int64Counter
)

// ContextAnalyzer interprets one conversational turn: it normalizes the
// utterance, extracts booking fields on top of the prior session snapshot,
// detects the caller's intent and recommends the next action. It is pure and
// deterministic given its pattern tables.
type ContextAnalyzer struct {
	patterns *Patterns
}

// NewContextAnalyzer creates an analyzer over an immutable pattern config
func NewContextAnalyzer(patterns *Patterns) *ContextAnalyzer {
	return &ContextAnalyzer{patterns: patterns}
}

// Analyze processes a raw utterance against the prior extracted fields.
// Malformed or empty input is not an error: the result degrades to the
// general intent with zero confidence.
func (a *ContextAnalyzer) Analyze(input string, prior entities.ExtractedFields) entities.AnalysisResult {
	result := entities.AnalysisResult{
		OriginalInput:   input,
		ExtractedFields: prior,
		DetectedIntent:  entities.IntentGeneral,
		NextAction:      entities.ActionAskClarification,
	}

	normalized := a.normalize(input)
	result.NormalizedInput = normalized
	if normalized == "" {
		return result
	}

	result.DetectedIntent = a.detectIntent(normalized)
	result.ExtractedFields = a.extractFields(normalized, input, prior, result.DetectedIntent)
	result.Confidence = a.scoreConfidence(normalized, result.DetectedIntent, result.ExtractedFields)
	result.MissingFields = a.missingFields(result.DetectedIntent, result.ExtractedFields)
	result.NextAction = a.nextAction(result.DetectedIntent, result.MissingFields)
	result.Recommendations = a.recommendations(result)

	if result.DetectedIntent == entities.IntentGeneral {
		recordUnrecognizedUtterance()
	}

	return result
}

// normalize lower-cases the input, folds the curly apostrophe to the
// straight glyph used by the pattern tables, and collapses whitespace
func (a *ContextAnalyzer) normalize(input string) string {
	q := strings.ToLower(strings.TrimSpace(input))
	q = strings.ReplaceAll(q, "’", "'")
	return strings.Join(strings.Fields(q), " ")
}

func (a *ContextAnalyzer) detectIntent(normalized string) entities.Intent {
	// confirmation and negation short-circuit category scoring
	if strings.Contains(normalized, "oui") || strings.Contains(normalized, "yes") {
		return entities.IntentConfirmation
	}
	if strings.Contains(normalized, "non") || strings.Contains(normalized, "no") {
		return entities.IntentNegation
	}

	best := entities.IntentGeneral
	bestCount := 0
	for _, cat := range a.patterns.Intents {
		count := 0
		for _, trigger := range cat.Triggers {
			if strings.Contains(normalized, trigger) {
				count++
			}
		}
		// strict comparison keeps the first-declared intent on ties
		if count > bestCount {
			best = cat.Intent
			bestCount = count
		}
	}
	return best
}

// extractFields evaluates each still-unset field against its pattern table
// and merges the matches on top of prior. Set fields are never re-evaluated,
// which is what makes multi-turn slot filling additive.
func (a *ContextAnalyzer) extractFields(normalized, raw string, prior entities.ExtractedFields, intent entities.Intent) entities.ExtractedFields {
	extracted := entities.ExtractedFields{}

	if prior.Service == "" {
		if category, ok := matchCategory(a.patterns.Services, normalized); ok {
			extracted.Service = category
			extracted.ServiceConfidence = serviceConfidence
		}
	}
	if prior.Date == "" {
		if category, ok := matchCategory(a.patterns.Dates, normalized); ok {
			extracted.Date = category
			extracted.DateConfidence = dateConfidence
		}
	}
	if prior.Time == "" {
		if category, ok := matchCategory(a.patterns.Times, normalized); ok {
			extracted.Time = category
			extracted.TimeConfidence = timeConfidence
		}
	}
	if prior.Barbier == "" {
		if category, ok := matchCategory(a.patterns.Barbiers, normalized); ok {
			extracted.Barbier = category
			extracted.BarbierConfidence = barbierConfidence
		}
	}

	// The name heuristic runs on the raw input so capitalization survives.
	// It is skipped after a confirmation/negation short-circuit, otherwise a
	// bare "Oui" would be captured as the client's name.
	if prior.Name == "" && intent != entities.IntentConfirmation && intent != entities.IntentNegation {
		if name, ok := extractName(raw); ok {
			extracted.Name = name
			extracted.NameConfidence = nameConfidence
		}
	}

	return prior.Merge(extracted)
}

// matchCategory returns the first declared category whose pattern list has a
// substring match in the normalized input
func matchCategory(table []FieldCategory, normalized string) (string, bool) {
	for _, cat := range table {
		for _, pattern := range cat.Patterns {
			if strings.Contains(normalized, pattern) {
				return cat.Category, true
			}
		}
	}
	return "", false
}

// extractName applies the name-shape heuristic: one to four tokens, each at
// least two letters starting with an uppercase letter, with only hyphens,
// apostrophes and periods allowed besides letters. The first two tokens are
// taken as the name.
func extractName(raw string) (string, bool) {
	tokens := strings.Fields(strings.TrimSpace(raw))
	if len(tokens) < 1 || len(tokens) > 4 {
		return "", false
	}
	for _, token := range tokens {
		if !tokenLooksLikeName(token) {
			return "", false
		}
	}
	if len(tokens) == 1 {
		return tokens[0], true
	}
	return tokens[0] + " " + tokens[1], true
}

func tokenLooksLikeName(token string) bool {
	runes := []rune(token)
	letters := 0
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r):
			if i == 0 && !unicode.IsUpper(r) {
				return false
			}
			letters++
		case r == '-' || r == '\'' || r == '’' || r == '.':
			// allowed separators inside compound names
		default:
			return false
		}
	}
	return letters >= 2
}

func (a *ContextAnalyzer) scoreConfidence(normalized string, intent entities.Intent, fields entities.ExtractedFields) float64 {
	score := 0.0
	if intent != entities.IntentGeneral {
		score += confidenceIntentBonus
	}
	score += float64(fields.PopulatedCount()) / confidenceFieldDenominator * confidenceFieldWeight
	for _, marker := range a.patterns.Colloquialisms {
		if strings.Contains(normalized, marker) {
			score += confidenceColloquialBonus
			break
		}
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// missingFields lists the required booking fields still unset, in asking
// priority order. Barbier is optional and never listed.
func (a *ContextAnalyzer) missingFields(intent entities.Intent, fields entities.ExtractedFields) []string {
	if intent != entities.IntentBooking {
		return nil
	}
	var missing []string
	if fields.Service == "" {
		missing = append(missing, entities.FieldService)
	}
	if fields.Date == "" {
		missing = append(missing, entities.FieldDate)
	}
	if fields.Time == "" {
		missing = append(missing, entities.FieldTime)
	}
	if fields.Name == "" {
		missing = append(missing, entities.FieldName)
	}
	return missing
}

func (a *ContextAnalyzer) nextAction(intent entities.Intent, missing []string) entities.NextAction {
	switch intent {
	case entities.IntentBooking:
		if len(missing) == 0 {
			return entities.ActionConfirmBooking
		}
		switch missing[0] {
		case entities.FieldService:
			return entities.ActionAskService
		case entities.FieldDate:
			return entities.ActionAskDate
		case entities.FieldTime:
			return entities.ActionAskTime
		default:
			return entities.ActionAskName
		}
	case entities.IntentPricing:
		return entities.ActionProvidePrices
	case entities.IntentHours:
		return entities.ActionProvideHours
	case entities.IntentConfirmation:
		return entities.ActionProcessConfirm
	default:
		return entities.ActionAskClarification
	}
}

func (a *ContextAnalyzer) recommendations(result entities.AnalysisResult) []string {
	var recs []string
	if result.Confidence < 0.5 {
		recs = append(recs, "confidence low")
	}
	if len(result.MissingFields) > 0 {
		recs = append(recs, "collect: "+strings.Join(result.MissingFields, ", "))
	}
	if result.DetectedIntent == entities.IntentBooking && result.Confidence > 0.8 {
		recs = append(recs, "proceed with booking")
	}
	return recs
}

func initUnrecognizedCounter() {
	meter := otel.Meter("github.com/academiebarbier/marcel-backend/context_analyzer")
	counter, err := meter.Int64Counter(
		"assistant.utterance.unrecognized.count",
		metric.WithDescription("Count of utterances that resolved to the general intent"),
	)
	if err == nil {
		unrecognizedCounter = counter
	}
}

// recordUnrecognizedUtterance counts general-intent turns without recording
// the utterance itself
func recordUnrecognizedUtterance() {
	unrecognizedCounterOnce.Do(initUnrecognizedCounter)
	if unrecognizedCounter == nil {
		return
	}
	unrecognizedCounter.Add(context.Background(), 1)
}
