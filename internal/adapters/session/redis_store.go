package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
	"github.com/academiebarbier/marcel-backend/internal/domain/providers"
	apperrors "github.com/academiebarbier/marcel-backend/pkg/errors"
)

const sessionKeyPrefix = "marcel:session:"

// RedisStore is a SessionStore layered over a CacheProvider. Sessions are
// stored as JSON with the TTL handed to Redis, so expiry is enforced by the
// server and SweepExpired has nothing to remove. The read-merge-write cycle
// in Save is serialized per key with an in-process lock; the webhook
// transport already serializes turns per caller, the lock covers carrier
// retries landing concurrently.
type RedisStore struct {
	cache providers.CacheProvider
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(cache providers.CacheProvider, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		cache: cache,
		ttl:   ttl,
		locks: make(map[string]*sync.Mutex),
	}
}

// Get retrieves the session for a key
func (s *RedisStore) Get(ctx context.Context, key string) (*entities.Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+key)
	if errors.Is(err, providers.ErrCacheMiss) {
		return nil, providers.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.NewExternalError("session lookup failed", err)
	}

	var sess entities.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, apperrors.NewInternalError("corrupt session record", err)
	}
	return &sess, nil
}

// Save upserts the session for a key with an additive field merge
func (s *RedisStore) Save(ctx context.Context, key string, fields entities.ExtractedFields, intent entities.Intent, confidence float64) (*entities.Session, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	sess, err := s.Get(ctx, key)
	if errors.Is(err, providers.ErrSessionNotFound) {
		sess = &entities.Session{
			SessionKey: key,
			CreatedAt:  now,
		}
	} else if err != nil {
		return nil, err
	}

	sess.ExtractedInfo = sess.ExtractedInfo.Merge(fields)
	sess.DetectedIntent = intent
	sess.Confidence = confidence
	sess.LastUpdatedAt = now

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, apperrors.NewInternalError("marshal session record", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+key, data, int(s.ttl.Seconds())); err != nil {
		return nil, apperrors.NewExternalError("session save failed", err)
	}
	return sess, nil
}

// SweepExpired reports zero removals: Redis expires session keys itself
func (s *RedisStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

// Delete removes the session for a key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.cache.Delete(ctx, sessionKeyPrefix+key); err != nil {
		return apperrors.NewExternalError("session delete failed", err)
	}
	return nil
}

func (s *RedisStore) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
