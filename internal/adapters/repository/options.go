package repository

import (
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/pkg/logger"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithSeed preloads the store with players. Given ids are kept as-is.
func WithSeed(players []model.Player) Option {
	return func(s *MemoryStore) {
		s.players = make([]model.Player, 0, len(players))
		for _, p := range players {
			s.players = append(s.players, p.Clone())
		}
	}
}

// WithLogger sets the logger used for mutation records.
func WithLogger(l logger.Logger) Option {
	return func(s *MemoryStore) {
		if l != nil {
			s.logger = l
		}
	}
}
