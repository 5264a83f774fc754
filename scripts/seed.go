package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/academiebarbier/marcel-backend/internal/adapters/database"
	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/clients/postgres"
	"github.com/academiebarbier/marcel-backend/pkg/config"
)

const bookingsSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	id          UUID PRIMARY KEY,
	phone       TEXT NOT NULL,
	service     TEXT NOT NULL,
	date        TEXT NOT NULL,
	time_block  TEXT NOT NULL,
	barbier     TEXT NOT NULL DEFAULT '',
	client_name TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_phone ON bookings (phone, created_at DESC);
`

// Seeds the bookings schema and a couple of demo rows for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, bookingsSchema); err != nil {
		log.Fatal().Err(err).Msg("failed to create bookings schema")
	}
	log.Info().Msg("bookings schema ready")

	repo := database.NewBookingAdapter(pgClient)
	now := time.Now()

	demos := []*entities.Booking{
		{
			ID:         uuid.New().String(),
			Phone:      "+15145550001",
			Service:    "coupe_homme",
			Date:       "mardi",
			TimeBlock:  "matin",
			ClientName: "Jean Tremblay",
			Status:     entities.BookingStatusConfirmed,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         uuid.New().String(),
			Phone:      "+15145550002",
			Service:    "coupe_barbe",
			Date:       "samedi",
			TimeBlock:  "apres_midi",
			Barbier:    "marcel",
			ClientName: "Pierre Lavoie",
			Status:     entities.BookingStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	for _, booking := range demos {
		if err := repo.Create(ctx, booking); err != nil {
			log.Fatal().Err(err).Str("client", booking.ClientName).Msg("failed to seed booking")
		}
		log.Info().Str("id", booking.ID).Str("client", booking.ClientName).Msg("seeded booking")
	}
}
