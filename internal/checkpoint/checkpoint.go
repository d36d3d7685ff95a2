// Package checkpoint remembers which games a run has already classified so
// an interrupted run can resume without redoing work.
package checkpoint

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store records finished game identifiers.
type Store interface {
	// Done reports whether id was marked by an earlier call to Mark.
	Done(ctx context.Context, id string) (bool, error)
	// Mark records ids as finished.
	Mark(ctx context.Context, ids ...string) error
	// Count returns the number of finished identifiers.
	Count(ctx context.Context) (int64, error)
	Close() error
}

// MemoryStore keeps identifiers in a map. It lives only as long as the
// process.
type MemoryStore struct {
	mu   sync.RWMutex
	done map[string]struct{}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{done: make(map[string]struct{})}
}

func (m *MemoryStore) Done(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.done[id]
	return ok, nil
}

func (m *MemoryStore) Mark(_ context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.done[id] = struct{}{}
	}
	return nil
}

func (m *MemoryStore) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.done)), nil
}

func (m *MemoryStore) Close() error { return nil }

// RedisStore keeps identifiers in a Redis set.
type RedisStore struct {
	rdb *redis.Client
	key string
	own bool
}

// NewRedisStore uses an existing client. The client is not closed by
// Close.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	return &RedisStore{rdb: rdb, key: strings.TrimSpace(key)}
}

// DialRedis connects to addr, which is either host:port or a redis://
// URL, and checks the connection.
func DialRedis(ctx context.Context, addr, key string) (*RedisStore, error) {
	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	s := NewRedisStore(rdb, key)
	s.own = true
	return s, nil
}

func (s *RedisStore) Done(ctx context.Context, id string) (bool, error) {
	return s.rdb.SIsMember(ctx, s.key, id).Result()
}

func (s *RedisStore) Mark(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	return s.rdb.SAdd(ctx, s.key, members...).Err()
}

func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	return s.rdb.SCard(ctx, s.key).Result()
}

// Reset forgets every identifier under the store's key.
func (s *RedisStore) Reset(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}

func (s *RedisStore) Close() error {
	if !s.own {
		return nil
	}
	return s.rdb.Close()
}
