package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/providers"
)

// fakeClock is a manually advanced clock for TTL tests
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClockedStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)}
	return NewMemoryStore(ttl, clock.Now), clock
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store, _ := newClockedStore(time.Hour)
	_, err := store.Get(context.Background(), "+15145551234")
	if !errors.Is(err, providers.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_SaveThenGet(t *testing.T) {
	store, _ := newClockedStore(time.Hour)
	ctx := context.Background()

	fields := entities.ExtractedFields{Service: "barbe", ServiceConfidence: 0.9}
	saved, err := store.Save(ctx, "+15145551234", fields, entities.IntentBooking, 0.4)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ExtractedInfo.Service != "barbe" {
		t.Errorf("expected service barbe, got %q", saved.ExtractedInfo.Service)
	}

	got, err := store.Get(ctx, "+15145551234")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.DetectedIntent != entities.IntentBooking {
		t.Errorf("expected booking intent, got %s", got.DetectedIntent)
	}
	if got.Confidence != 0.4 {
		t.Errorf("expected confidence 0.4, got %f", got.Confidence)
	}
}

func TestMemoryStore_AdditiveMerge(t *testing.T) {
	store, _ := newClockedStore(time.Hour)
	ctx := context.Background()
	key := "+15145551234"

	_, err := store.Save(ctx, key, entities.ExtractedFields{Date: "mardi", DateConfidence: 0.8}, entities.IntentBooking, 0.3)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// second save tries to flip the date and adds a time
	saved, err := store.Save(ctx, key, entities.ExtractedFields{Date: "jeudi", Time: "soir", TimeConfidence: 0.8}, entities.IntentBooking, 0.5)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ExtractedInfo.Date != "mardi" {
		t.Errorf("set field was overwritten: got %q", saved.ExtractedInfo.Date)
	}
	if saved.ExtractedInfo.Time != "soir" {
		t.Errorf("unset field was not filled: got %q", saved.ExtractedInfo.Time)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store, _ := newClockedStore(time.Hour)
	ctx := context.Background()
	key := "+15145551234"

	_, err := store.Save(ctx, key, entities.ExtractedFields{Service: "barbe"}, entities.IntentBooking, 0.3)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, _ := store.Get(ctx, key)
	got.ExtractedInfo.Service = "coloration"

	again, _ := store.Get(ctx, key)
	if again.ExtractedInfo.Service != "barbe" {
		t.Error("mutation of a returned session leaked into the store")
	}
}

func TestMemoryStore_TTLEviction(t *testing.T) {
	store, clock := newClockedStore(time.Hour)
	ctx := context.Background()

	_, err := store.Save(ctx, "stale", entities.ExtractedFields{}, entities.IntentGeneral, 0)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	clock.Advance(time.Hour + time.Minute)

	removed, err := store.SweepExpired(ctx, clock.Now())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if _, err := store.Get(ctx, "stale"); !errors.Is(err, providers.ErrSessionNotFound) {
		t.Errorf("expected stale session gone, got %v", err)
	}
}

func TestMemoryStore_ExactTTLBoundaryIsKept(t *testing.T) {
	store, clock := newClockedStore(time.Hour)
	ctx := context.Background()

	_, _ = store.Save(ctx, "edge", entities.ExtractedFields{}, entities.IntentGeneral, 0)

	// exactly at the TTL, idle time is not strictly greater than the TTL
	clock.Advance(time.Hour)
	removed, err := store.SweepExpired(ctx, clock.Now())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed at the boundary, got %d", removed)
	}
}

func TestMemoryStore_SaveRefreshesTTL(t *testing.T) {
	store, clock := newClockedStore(time.Hour)
	ctx := context.Background()

	_, _ = store.Save(ctx, "active", entities.ExtractedFields{}, entities.IntentGeneral, 0)

	clock.Advance(45 * time.Minute)
	_, _ = store.Save(ctx, "active", entities.ExtractedFields{Date: "mardi"}, entities.IntentBooking, 0.3)

	clock.Advance(45 * time.Minute)
	if _, err := store.Get(ctx, "active"); err != nil {
		t.Errorf("refreshed session should survive: %v", err)
	}
}

func TestMemoryStore_SweepRunsOnSave(t *testing.T) {
	store, clock := newClockedStore(time.Hour)
	ctx := context.Background()

	_, _ = store.Save(ctx, "stale", entities.ExtractedFields{}, entities.IntentGeneral, 0)

	clock.Advance(2 * time.Hour)
	_, _ = store.Save(ctx, "fresh", entities.ExtractedFields{}, entities.IntentGeneral, 0)

	if store.Len() != 1 {
		t.Errorf("expected save to sweep the stale session, have %d sessions", store.Len())
	}
	if _, err := store.Get(ctx, "stale"); !errors.Is(err, providers.ErrSessionNotFound) {
		t.Errorf("expected stale session gone, got %v", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store, _ := newClockedStore(time.Hour)
	ctx := context.Background()

	_, _ = store.Save(ctx, "done", entities.ExtractedFields{}, entities.IntentConfirmation, 0.9)
	if err := store.Delete(ctx, "done"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "done"); !errors.Is(err, providers.ErrSessionNotFound) {
		t.Errorf("expected session gone, got %v", err)
	}

	// deleting an absent key is not an error
	if err := store.Delete(ctx, "done"); err != nil {
		t.Errorf("delete of absent key failed: %v", err)
	}
}

func TestMemoryStore_ZeroTTLFallsBackToDefault(t *testing.T) {
	store := NewMemoryStore(0, nil)
	if store.ttl != DefaultTTL {
		t.Errorf("expected default TTL %v, got %v", DefaultTTL, store.ttl)
	}
}
