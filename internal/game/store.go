package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultSessionTTL = 2 * time.Hour
	lockTTL           = 10 * time.Second
	lockRetryDelay    = 15 * time.Millisecond
)

// Store keeps live session state. Nothing outlives the session TTL.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Lock serialises state transitions of one session. It waits until the
	// lock is free or ctx is done, in which case ErrSessionBusy is returned.
	Lock(ctx context.Context, id uuid.UUID) (func() error, error)
}

// MemoryStore is a process-local Store. Sessions are cloned on the way in
// and out so callers never share state.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]memoryEntry
	locks    map[uuid.UUID]chan struct{}
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	session   *Session
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store whose entries expire after ttl
// of inactivity.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &MemoryStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		locks:    make(map[uuid.UUID]chan struct{}),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = memoryEntry{session: s.Clone(), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		m.dropIdleLock(id)
		return nil, ErrSessionNotFound
	}
	return entry.session.Clone(), nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	m.dropIdleLock(id)
	return nil
}

// Lock hands out one buffered channel per session. A channel dropped from
// the map while a caller waited on it no longer counts, so the caller
// retries on the current one.
func (m *MemoryStore) Lock(ctx context.Context, id uuid.UUID) (func() error, error) {
	for {
		m.mu.Lock()
		ch, ok := m.locks[id]
		if !ok {
			ch = make(chan struct{}, 1)
			m.locks[id] = ch
		}
		m.mu.Unlock()

		select {
		case ch <- struct{}{}:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrSessionBusy, ctx.Err())
		}

		m.mu.Lock()
		current := m.locks[id] == ch
		if !current {
			<-ch
		}
		m.mu.Unlock()
		if current {
			return m.unlocker(id, ch), nil
		}
	}
}

func (m *MemoryStore) unlocker(id uuid.UUID, ch chan struct{}) func() error {
	var once sync.Once
	return func() error {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			<-ch
			// The session went away while locked; nothing else needs the channel.
			if _, live := m.sessions[id]; !live && m.locks[id] == ch {
				delete(m.locks, id)
			}
		})
		return nil
	}
}

// dropIdleLock forgets the lock of id unless someone holds it. Callers hold m.mu.
func (m *MemoryStore) dropIdleLock(id uuid.UUID) {
	if ch, ok := m.locks[id]; ok && len(ch) == 0 {
		delete(m.locks, id)
	}
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, id)
			m.dropIdleLock(id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// unlockScript deletes the lock only if it still holds our token.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// RedisStore keeps sessions as JSON with a sliding TTL and guards
// transitions with a SetNX lock.
type RedisStore struct {
	redis  redis.Cmdable
	ttl    time.Duration
	logger zerolog.Logger
	token  func() string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis backed store.
func NewRedisStore(client redis.Cmdable, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		logger: logger.With().Str("component", "session_store").Logger(),
		token:  func() string { return uuid.NewString() },
	}
}

func sessionKey(id uuid.UUID) string { return fmt.Sprintf("session:state:%s", id.String()) }
func lockKey(id uuid.UUID) string    { return fmt.Sprintf("session:lock:%s", id.String()) }

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.redis.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) Lock(ctx context.Context, id uuid.UUID) (func() error, error) {
	key := lockKey(id)
	value := r.token()

	for {
		acquired, err := r.redis.SetNX(ctx, key, value, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if acquired {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrSessionBusy, ctx.Err())
		case <-time.After(lockRetryDelay):
		}
	}

	unlock := func() error {
		// The request context may already be cancelled by the time we unlock.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := r.redis.Eval(ctx, unlockScript, []string{key}, value).Err(); err != nil {
			r.logger.Warn().Err(err).Str("session_id", id.String()).Msg("release lock failed")
			return fmt.Errorf("release lock: %w", err)
		}
		return nil
	}
	return unlock, nil
}

// Ping checks the Redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}
