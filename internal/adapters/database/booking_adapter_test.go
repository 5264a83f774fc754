package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/repositories"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/academiebarbier/marcel-backend/pkg/errors"
)

func newMockAdapter(t *testing.T) (repositories.BookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	// the SQL builder interpolates values, so expectations match on query shape
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := postgres.NewClientFromDB(sqlx.NewDb(db, "sqlmock"))
	return NewBookingAdapter(client), mock
}

func sampleBooking() *entities.Booking {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	return &entities.Booking{
		ID:         "11111111-2222-3333-4444-555555555555",
		Phone:      "+15145551234",
		Service:    "coupe_homme",
		Date:       "mardi",
		TimeBlock:  "matin",
		ClientName: "Jean Tremblay",
		Status:     entities.BookingStatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func bookingRows(b *entities.Booking) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "phone", "service", "date", "time_block",
		"barbier", "client_name", "status", "created_at", "updated_at",
	}).AddRow(b.ID, b.Phone, b.Service, b.Date, b.TimeBlock,
		b.Barbier, b.ClientName, b.Status, b.CreatedAt, b.UpdatedAt)
}

func TestBookingAdapter_Create(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Create(context.Background(), sampleBooking())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingAdapter_Create_DBError(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnError(assert.AnError)

	err := adapter.Create(context.Background(), sampleBooking())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestBookingAdapter_GetByID(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	want := sampleBooking()

	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE`).
		WillReturnRows(bookingRows(want))

	got, err := adapter.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.ClientName, got.ClientName)
	assert.Equal(t, want.Status, got.Status)
}

func TestBookingAdapter_GetByID_NotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestBookingAdapter_ListByPhone(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	want := sampleBooking()

	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE .+ ORDER BY "created_at" DESC`).
		WillReturnRows(bookingRows(want))

	bookings, err := adapter.ListByPhone(context.Background(), want.Phone)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, want.Phone, bookings[0].Phone)
}

func TestBookingAdapter_ListByPhone_Empty(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "phone", "service", "date", "time_block",
			"barbier", "client_name", "status", "created_at", "updated_at",
		}))

	bookings, err := adapter.ListByPhone(context.Background(), "+15140000000")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingAdapter_UpdateStatus(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.UpdateStatus(context.Background(), "some-id", entities.BookingStatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingAdapter_UpdateStatus_NotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.UpdateStatus(context.Background(), "missing", entities.BookingStatusCancelled)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
