package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/providers"
	"github.com/academiebarbier/marcel-backend/internal/domain/repositories"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/observability"
	apperrors "github.com/academiebarbier/marcel-backend/pkg/errors"
)

// BookingService turns a completed field snapshot into a persisted booking,
// sends the caller a confirmation receipt when a sender is configured and
// notifies the front desk through the event bus
type BookingService struct {
	repo    repositories.BookingRepository
	sender  providers.MessageSender
	events  providers.EventBus
	metrics *observability.Metrics
}

// NewBookingService creates a booking service. The sender and the event bus
// may be nil; the receipt SMS and the event are then skipped.
func NewBookingService(repo repositories.BookingRepository, sender providers.MessageSender, events providers.EventBus, metrics *observability.Metrics) *BookingService {
	return &BookingService{
		repo:    repo,
		sender:  sender,
		events:  events,
		metrics: metrics,
	}
}

// ConfirmBooking persists a confirmed booking built from the session fields
func (s *BookingService) ConfirmBooking(ctx context.Context, phone string, fields entities.ExtractedFields) (*entities.Booking, error) {
	if !fields.IsComplete() {
		return nil, apperrors.NewValidationError("booking fields incomplete")
	}

	now := time.Now()
	booking := &entities.Booking{
		ID:         uuid.New().String(),
		Phone:      phone,
		Service:    fields.Service,
		Date:       fields.Date,
		TimeBlock:  fields.Time,
		Barbier:    fields.Barbier,
		ClientName: fields.Name,
		Status:     entities.BookingStatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, apperrors.NewInternalError("failed to persist booking", err)
	}

	observability.RecordBookingMetric(ctx, s.metrics, booking.Service)

	if s.events != nil {
		event := entities.NewBookingEvent(entities.BookingEventTypeConfirmed, booking)
		if err := s.events.Publish(ctx, providers.ChannelBookingUpdates, event); err != nil {
			// the booking is saved either way, the event is best effort
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}

	if s.sender != nil {
		receipt := "Merci " + booking.ClientName + "! Ta réservation est enregistrée. Numéro de confirmation: " + booking.ID[:8]
		if _, err := s.sender.SendText(ctx, phone, receipt); err != nil {
			// the booking is saved either way, the receipt is best effort
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to send booking receipt")
		}
	}

	return booking, nil
}
