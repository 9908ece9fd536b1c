package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps dialogue state between messages. Get returns a fresh
// inactive state for unknown or expired sessions.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Set(ctx context.Context, sessionID string, st *State) error
	Clear(ctx context.Context, sessionID string) error
}

// DefaultSessionTTL replaces non-positive TTLs given to the stores.
const DefaultSessionTTL = 30 * time.Minute

func sessionTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultSessionTTL
	}
	return ttl
}

// ---------------------------------------------------------------------------
// memory
// ---------------------------------------------------------------------------

type memoryEntry struct {
	state   State
	expires time.Time
}

type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	sessions  map[string]memoryEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      sessionTTL(ttl),
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok || s.now().After(e.expires) {
		delete(s.sessions, sessionID)
		return &State{}, nil
	}
	st := e.state
	st.Snapshot = append(st.Snapshot[:0:0], e.state.Snapshot...)
	return &st, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID string, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > time.Minute {
		for id, e := range s.sessions {
			if now.After(e.expires) {
				delete(s.sessions, id)
			}
		}
		s.lastSweep = now
	}

	cp := *st
	cp.Snapshot = append(st.Snapshot[:0:0], st.Snapshot...)
	s.sessions[sessionID] = memoryEntry{state: cp, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// ---------------------------------------------------------------------------
// redis
// ---------------------------------------------------------------------------

const sessionKeyPrefix = "trialbook:dialogue:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: sessionTTL(ttl)}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, st *State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
