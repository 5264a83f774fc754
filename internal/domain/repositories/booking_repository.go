package repositories

import (
	"context"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
)

// BookingRepository persists bookings captured by the assistant
type BookingRepository interface {
	// Create inserts a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by its id
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// ListByPhone returns the bookings for a phone number, newest first
	ListByPhone(ctx context.Context, phone string) ([]*entities.Booking, error)

	// UpdateStatus changes the status of a booking
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error
}
