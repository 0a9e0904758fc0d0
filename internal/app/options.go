package service

import (
	"time"

	repository "github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects the record store. Without it Start builds a MemoryStore.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithPageSize sets the page size used when a list request has none.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithMaxPageSize caps the page size a list request may ask for.
func WithMaxPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithSeed controls whether a store built by Start holds the seed roster.
func WithSeed(seed bool) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithClock sets the time source used to derive ages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
