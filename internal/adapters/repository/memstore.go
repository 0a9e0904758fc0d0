package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// MemoryStore is an in-memory, insertion-ordered Store. Every operation
// holds the lock for its whole duration, so mutations never interleave.
type MemoryStore struct {
	mu      sync.RWMutex
	players []model.Player
	logger  logger.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store unless WithSeed is given.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		players: []model.Player{},
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdatePlayersTotal(len(s.players))
	return s
}

// Add implements Store.
func (s *MemoryStore) Add(ctx context.Context, p model.Player) model.Player {
	start := time.Now()
	defer func() { metrics.RecordStoreOpLatency("add", metrics.SinceMs(start)) }()

	s.mu.Lock()
	p = p.Clone()
	p.ID = s.nextIDLocked()
	s.players = append(s.players, p)
	n := len(s.players)
	s.mu.Unlock()

	metrics.RecordPlayerMutation("add", "ok")
	metrics.UpdateLastAllocatedID(p.ID)
	metrics.UpdatePlayersTotal(n)
	s.logger.Debug(ctx, "player added", logger.Int("id", p.ID), logger.Int("count", n))
	return p.Clone()
}

// nextIDLocked returns max(existing ids)+1, or 1 for an empty roster.
// Caller must hold s.mu.
func (s *MemoryStore) nextIDLocked() int {
	maxID := 0
	for _, p := range s.players {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// indexLocked returns the slice position of id or -1. Caller must hold s.mu.
func (s *MemoryStore) indexLocked(id int) int {
	for i := range s.players {
		if s.players[i].ID == id {
			return i
		}
	}
	return -1
}

// Update implements Store.
func (s *MemoryStore) Update(ctx context.Context, id int, patch model.Patch) (model.Player, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOpLatency("update", metrics.SinceMs(start)) }()

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		metrics.RecordStoreNotFound("update")
		metrics.RecordPlayerMutation("update", "not_found")
		return model.Player{}, ErrNotFound
	}
	updated := patch.Apply(s.players[i])
	updated.ID = id
	s.players[i] = updated
	s.mu.Unlock()

	metrics.RecordPlayerMutation("update", "ok")
	s.logger.Debug(ctx, "player updated", logger.Int("id", id))
	return updated.Clone(), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id int) bool {
	start := time.Now()
	defer func() { metrics.RecordStoreOpLatency("delete", metrics.SinceMs(start)) }()

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		metrics.RecordPlayerMutation("delete", "noop")
		return false
	}
	s.players = append(s.players[:i:i], s.players[i+1:]...)
	n := len(s.players)
	s.mu.Unlock()

	metrics.RecordPlayerMutation("delete", "ok")
	metrics.UpdatePlayersTotal(n)
	s.logger.Debug(ctx, "player deleted", logger.Int("id", id), logger.Int("count", n))
	return true
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id int) (model.Player, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOpLatency("get", metrics.SinceMs(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		metrics.RecordStoreNotFound("get")
		return model.Player{}, ErrNotFound
	}
	return s.players[i].Clone(), nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) []model.Player {
	start := time.Now()
	defer func() { metrics.RecordStoreOpLatency("list", metrics.SinceMs(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Player, len(s.players))
	for i, p := range s.players {
		out[i] = p.Clone()
	}
	return out
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
