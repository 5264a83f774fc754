package providers

import (
	"context"
	"errors"
	"time"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
)

// ErrSessionNotFound is returned by Get when no session exists for a key
var ErrSessionNotFound = errors.New("session not found")

// SessionStore owns conversational session records keyed by phone number.
// Save performs an additive merge: fields already set on the stored session
// are never overwritten. Implementations must serialize the get/merge/save
// cycle per key so concurrent turns for one caller cannot lose updates.
type SessionStore interface {
	// Get retrieves the session for a key, or ErrSessionNotFound
	Get(ctx context.Context, key string) (*entities.Session, error)

	// Save upserts the session for a key, merging fields additively and
	// bumping LastUpdatedAt. Expired sessions are swept opportunistically.
	Save(ctx context.Context, key string, fields entities.ExtractedFields, intent entities.Intent, confidence float64) (*entities.Session, error)

	// SweepExpired removes sessions idle for longer than the store TTL and
	// returns how many were removed
	SweepExpired(ctx context.Context, now time.Time) (int, error)

	// Delete removes the session for a key
	Delete(ctx context.Context, key string) error
}
