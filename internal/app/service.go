// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/paging"
	"github.com/okian/roster/internal/domain/query"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/internal/domain/validation"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// ListRequest mirrors the list query shape shared with the API.
type ListRequest = types.ListRequest

// Service implements the API dependencies for the roster.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	pageSize    int
	maxPageSize int
	seed        bool
	now         func() time.Time

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pageSize:    5,
		maxPageSize: 100,
		seed:        true,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.maxPageSize < s.pageSize {
		s.maxPageSize = s.pageSize
	}

	return s
}

// Start prepares the store. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting roster service...")

	if s.store == nil {
		opts := []repository.Option{repository.WithLogger(s.logger.Named("store"))}
		if s.seed {
			opts = append(opts, repository.WithSeed(repository.SeedPlayers()))
		}
		s.store = repository.NewMemoryStore(opts...)
		s.logger.Info(ctx, "using memory store", logger.Bool("seeded", s.seed))
	}

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "roster service started",
		logger.Int("players", s.store.Count(ctx)),
		logger.Int("pageSize", s.pageSize),
		logger.Int("maxPageSize", s.maxPageSize),
	)

	return nil
}

// Stop marks the service stopped. The store keeps its records.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping roster service...")
	s.started = false
	s.logger.Info(context.Background(), "roster service stopped")
}

func (s *Service) ready() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListPlayers filters the roster and returns the requested page. A page
// outside the filtered page range falls back to page 1.
func (s *Service) ListPlayers(ctx context.Context, req ListRequest) (types.Page, error) {
	store, err := s.ready()
	if err != nil {
		return types.Page{}, err
	}
	start := time.Now()

	size := req.PageSize
	switch {
	case size <= 0:
		size = s.pageSize
	case size > s.maxPageSize:
		size = s.maxPageSize
	}

	filtered := query.Filter(store.List(ctx), req.Search, req.Criteria)
	count := paging.PageCount(filtered, size)

	pager := paging.NewPager()
	if req.Page != 0 && !pager.ChangePage(req.Page, count) {
		s.logger.Debug(ctx, "page out of range, showing first page",
			logger.Int("page", req.Page),
			logger.Int("pageCount", count),
		)
	}

	now := s.now()
	items := paging.Paginate(filtered, size, pager.Current())
	views := make([]types.PlayerView, len(items))
	for i, p := range items {
		views[i] = types.NewPlayerView(p, now)
	}

	metrics.RecordQuery(len(filtered), metrics.SinceMs(start))

	return types.Page{
		Items:     views,
		Page:      pager.Current(),
		PageSize:  size,
		PageCount: count,
		Total:     len(filtered),
		HasPrev:   pager.HasPrev(),
		HasNext:   pager.HasNext(count),
	}, nil
}

// GetPlayer returns one player for the edit view.
func (s *Service) GetPlayer(ctx context.Context, id int) (types.PlayerView, error) {
	store, err := s.ready()
	if err != nil {
		return types.PlayerView{}, err
	}
	p, err := store.Get(ctx, id)
	if err != nil {
		return types.PlayerView{}, err
	}
	return types.NewPlayerView(p, s.now()), nil
}

// CreatePlayer validates d and stores it under a new id. Validation
// failures are returned as validation.Errors.
func (s *Service) CreatePlayer(ctx context.Context, d model.Draft) (model.Player, error) {
	store, err := s.ready()
	if err != nil {
		return model.Player{}, err
	}
	p, err := validation.Check(d)
	if err != nil {
		s.logValidation(ctx, "create", 0, err)
		return model.Player{}, err
	}
	created := store.Add(ctx, p)
	s.logger.Info(ctx, "player created", logger.Int("id", created.ID), logger.String("name", created.Name))
	return created, nil
}

// ReplacePlayer validates d and overwrites every field of player id.
func (s *Service) ReplacePlayer(ctx context.Context, id int, d model.Draft) (model.Player, error) {
	store, err := s.ready()
	if err != nil {
		return model.Player{}, err
	}
	p, err := validation.Check(d)
	if err != nil {
		s.logValidation(ctx, "replace", id, err)
		return model.Player{}, err
	}
	return s.update(ctx, store, id, p)
}

// PatchPlayer overlays dp on the current form values of player id,
// validates the merged form and stores it.
func (s *Service) PatchPlayer(ctx context.Context, id int, dp model.DraftPatch) (model.Player, error) {
	store, err := s.ready()
	if err != nil {
		return model.Player{}, err
	}
	current, err := store.Get(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "update of unknown player", logger.Int("id", id))
		return model.Player{}, err
	}
	p, err := validation.Check(dp.Apply(model.DraftFrom(current)))
	if err != nil {
		s.logValidation(ctx, "patch", id, err)
		return model.Player{}, err
	}
	return s.update(ctx, store, id, p)
}

func (s *Service) update(ctx context.Context, store repository.Store, id int, p model.Player) (model.Player, error) {
	updated, err := store.Update(ctx, id, model.FullPatch(p))
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn(ctx, "update of unknown player", logger.Int("id", id))
		return model.Player{}, err
	}
	if err != nil {
		return model.Player{}, err
	}
	s.logger.Info(ctx, "player updated", logger.Int("id", id))
	return updated, nil
}

// DeletePlayer removes player id. Unknown ids are a no-op; the result
// reports whether a record was removed.
func (s *Service) DeletePlayer(ctx context.Context, id int) (bool, error) {
	store, err := s.ready()
	if err != nil {
		return false, err
	}
	removed := store.Delete(ctx, id)
	if removed {
		s.logger.Info(ctx, "player deleted", logger.Int("id", id))
	} else {
		s.logger.Debug(ctx, "delete of unknown player ignored", logger.Int("id", id))
	}
	return removed, nil
}

// Leagues returns the league options of the edit form.
func (s *Service) Leagues() []string {
	return append([]string(nil), model.KnownLeagues...)
}

func (s *Service) logValidation(ctx context.Context, op string, id int, err error) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		s.logger.Debug(ctx, "player rejected",
			logger.String("op", op),
			logger.Int("id", id),
			logger.Any("fields", errs.Fields()),
		)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.Stats{
		PageSize:    s.pageSize,
		MaxPageSize: s.maxPageSize,
		Running:     s.started,
	}

	if s.started {
		ctx := context.Background()
		players := s.store.List(ctx)
		for _, p := range players {
			stats.MaxID = max(stats.MaxID, p.ID)
		}
		stats.Players = len(players)
		stats.StartedAt = s.startedAt
		stats.UptimeSeconds = s.now().Sub(s.startedAt).Seconds()

		metrics.UpdatePlayersTotal(stats.Players)
	}

	return stats
}
