package services

import (
	"context"
	"errors"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/providers"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/observability"
	apperrors "github.com/academiebarbier/marcel-backend/pkg/errors"
)

// ConversationService runs one full conversational turn: session lookup,
// analysis, session save, reply composition. Each turn either completes and
// produces a reply or fails without touching the session.
type ConversationService struct {
	analyzer *ContextAnalyzer
	composer *ResponseComposer
	store    providers.SessionStore
	bookings *BookingService
	metrics  *observability.Metrics
}

// NewConversationService creates the turn orchestrator. The booking service
// may be nil when booking persistence is not configured.
func NewConversationService(analyzer *ContextAnalyzer, composer *ResponseComposer, store providers.SessionStore, bookings *BookingService, metrics *observability.Metrics) *ConversationService {
	return &ConversationService{
		analyzer: analyzer,
		composer: composer,
		store:    store,
		bookings: bookings,
		metrics:  metrics,
	}
}

// HandleTurn processes one inbound message for a session key and returns
// the reply to send back. Store failures propagate to the caller, which is
// responsible for substituting a safe fallback reply.
func (s *ConversationService) HandleTurn(ctx context.Context, sessionKey, text string) (string, error) {
	logger := observability.LoggerFromContext(ctx)

	prior := entities.ExtractedFields{}
	sess, err := s.store.Get(ctx, sessionKey)
	switch {
	case err == nil:
		prior = sess.ExtractedInfo
	case errors.Is(err, providers.ErrSessionNotFound):
		// first turn for this caller
	default:
		return "", apperrors.NewExternalError("session lookup failed", err)
	}

	result, ok := s.analyzeSafely(ctx, text, prior)
	if !ok {
		// degraded turn: the session is left unmodified and the caller gets
		// the generic clarifying prompt
		return s.composer.Compose(entities.ActionAskClarification, prior), nil
	}

	if _, err := s.store.Save(ctx, sessionKey, result.ExtractedFields, result.DetectedIntent, result.Confidence); err != nil {
		return "", apperrors.NewExternalError("session save failed", err)
	}

	observability.RecordTurnMetric(ctx, s.metrics, string(result.DetectedIntent), string(result.NextAction))
	logger.Info().
		Str("session_key", sessionKey).
		Str("intent", string(result.DetectedIntent)).
		Str("next_action", string(result.NextAction)).
		Float64("confidence", result.Confidence).
		Strs("missing_fields", result.MissingFields).
		Msg("turn analyzed")

	if result.NextAction == entities.ActionProcessConfirm && result.ExtractedFields.IsComplete() {
		return s.completeBooking(ctx, sessionKey, result.ExtractedFields), nil
	}

	return s.composer.Compose(result.NextAction, result.ExtractedFields), nil
}

// completeBooking persists the booking and ends the conversation. Failures
// fall back to the confirmation reply alone; the front desk can still see
// the session outcome in the logs.
func (s *ConversationService) completeBooking(ctx context.Context, sessionKey string, fields entities.ExtractedFields) string {
	logger := observability.LoggerFromContext(ctx)

	if s.bookings != nil {
		if _, err := s.bookings.ConfirmBooking(ctx, sessionKey, fields); err != nil {
			logger.Error().Err(err).Str("session_key", sessionKey).Msg("failed to persist confirmed booking")
		}
	}
	if err := s.store.Delete(ctx, sessionKey); err != nil {
		logger.Warn().Err(err).Str("session_key", sessionKey).Msg("failed to delete completed session")
	}

	return s.composer.Compose(entities.ActionProcessConfirm, fields)
}

// analyzeSafely guards the turn against a pattern-table misconfiguration:
// a panic inside the analyzer is logged and degraded to the malformed-input
// behavior instead of corrupting the session.
func (s *ConversationService) analyzeSafely(ctx context.Context, text string, prior entities.ExtractedFields) (result entities.AnalysisResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			observability.LoggerFromContext(ctx).Error().
				Interface("panic", r).
				Msg("analyzer panicked, degrading turn")
			ok = false
		}
	}()
	return s.analyzer.Analyze(text, prior), true
}
