package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/repositories"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/academiebarbier/marcel-backend/pkg/errors"
)

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB().DB),
	}
}

// Create inserts a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":          booking.ID,
		"phone":       booking.Phone,
		"service":     booking.Service,
		"date":        booking.Date,
		"time_block":  booking.TimeBlock,
		"barbier":     booking.Barbier,
		"client_name": booking.ClientName,
		"status":      booking.Status,
		"created_at":  booking.CreatedAt,
		"updated_at":  booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}
	return nil
}

// GetByID retrieves a booking by its id
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns()...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking := &entities.Booking{}
	if err := a.client.DB().GetContext(ctx, booking, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("booking not found")
		}
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// ListByPhone returns the bookings for a phone number, newest first
func (a *BookingAdapter) ListByPhone(ctx context.Context, phone string) ([]*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns()...).
		From("bookings").
		Where(goqu.Ex{"phone": phone}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	bookings := []*entities.Booking{}
	if err := a.client.DB().SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}

// UpdateStatus changes the status of a booking
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError("booking not found")
	}
	return nil
}

func bookingColumns() []interface{} {
	return []interface{}{
		"id", "phone", "service", "date", "time_block",
		"barbier", "client_name", "status", "created_at", "updated_at",
	}
}
