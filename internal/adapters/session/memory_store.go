package session

import (
	"context"
	"sync"
	"time"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/providers"
)

// DefaultTTL is how long a session survives without a new turn
const DefaultTTL = time.Hour

// MemoryStore is an in-process SessionStore backed by a map. Expired
// sessions are removed by a sweep that runs at the end of every Save; no
// timer is involved. The clock is injectable so eviction is testable
// without real delays.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*entities.Session
	ttl      time.Duration
	clock    func() time.Time
}

// NewMemoryStore creates a memory store with the given TTL. A zero ttl
// falls back to DefaultTTL, a nil clock to time.Now.
func NewMemoryStore(ttl time.Duration, clock func() time.Time) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		sessions: make(map[string]*entities.Session),
		ttl:      ttl,
		clock:    clock,
	}
}

// Get retrieves the session for a key
func (s *MemoryStore) Get(ctx context.Context, key string) (*entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, providers.ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

// Save upserts the session for a key. Fields merge additively: values
// already set on the stored session win over the incoming ones. The sweep
// runs before returning, inside the same critical section.
func (s *MemoryStore) Save(ctx context.Context, key string, fields entities.ExtractedFields, intent entities.Intent, confidence float64) (*entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	sess, ok := s.sessions[key]
	if !ok {
		sess = &entities.Session{
			SessionKey: key,
			CreatedAt:  now,
		}
		s.sessions[key] = sess
	}

	sess.ExtractedInfo = sess.ExtractedInfo.Merge(fields)
	sess.DetectedIntent = intent
	sess.Confidence = confidence
	sess.LastUpdatedAt = now

	s.sweepLocked(now)

	copied := *sess
	return &copied, nil
}

// SweepExpired removes sessions idle for longer than the TTL
func (s *MemoryStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now), nil
}

// Delete removes the session for a key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// Len returns the number of stored sessions, expired or not
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) sweepLocked(now time.Time) int {
	removed := 0
	for key, sess := range s.sessions {
		if now.Sub(sess.LastUpdatedAt) > s.ttl {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}
