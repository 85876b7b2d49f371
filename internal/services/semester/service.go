package semester

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/portal"
	semesterRepo "github.com/KirkDiggler/sportbot/internal/repositories/semester_index"
	"github.com/KirkDiggler/sportbot/internal/services/session"
)

// service implements the Resolver interface
type service struct {
	portalClient portal.Client
	registry     session.Registry
	indexRepo    semesterRepo.Repository
	location     *time.Location
	from         time.Time
	to           time.Time
	log          logger.Logger

	// rebuildMu keeps concurrent misses from rebuilding more than once
	rebuildMu sync.Mutex
}

// New creates a new semester index service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.PortalClient == nil {
		return nil, ErrNilPortalClient
	}

	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}

	if cfg.IndexRepo == nil {
		return nil, ErrNilIndexRepo
	}

	if cfg.Location == nil {
		return nil, ErrNilLocation
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &service{
		portalClient: cfg.PortalClient,
		registry:     cfg.Registry,
		indexRepo:    cfg.IndexRepo,
		location:     cfg.Location,
		from:         cfg.From,
		to:           cfg.To,
		log:          log.WithFields(map[string]interface{}{"component": "semester_index"}),
	}, nil
}

// Resolve looks the key up, rebuilding the index once on a miss
func (s *service) Resolve(ctx context.Context, key models.RecurringKey) ([]models.TrainingRef, error) {
	refs, err := s.lookup(ctx, key)
	if err == nil {
		return refs, nil
	}
	if !errors.Is(err, semesterRepo.ErrKeyNotFound) {
		return nil, err
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	// Another caller may have rebuilt while we waited
	refs, err = s.lookup(ctx, key)
	if err == nil {
		return refs, nil
	}
	if !errors.Is(err, semesterRepo.ErrKeyNotFound) {
		return nil, err
	}

	if _, err := s.rebuild(ctx); err != nil {
		return nil, err
	}

	refs, err = s.lookup(ctx, key)
	if errors.Is(err, semesterRepo.ErrKeyNotFound) {
		s.log.Warn("Recurring key missing after rebuild", map[string]interface{}{
			"key": key.String(),
		})
		return []models.TrainingRef{}, nil
	}
	if err != nil {
		return nil, err
	}

	return refs, nil
}

// Rebuild re-reads the semester and replaces the index
func (s *service) Rebuild(ctx context.Context) (*RebuildOutput, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	return s.rebuild(ctx)
}

func (s *service) lookup(ctx context.Context, key models.RecurringKey) ([]models.TrainingRef, error) {
	return s.indexRepo.Get(ctx, &semesterRepo.GetInput{Key: key})
}

func (s *service) rebuild(ctx context.Context) (*RebuildOutput, error) {
	svc, err := s.registry.ServiceSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get service session: %w", err)
	}

	from, to, err := s.bounds(ctx, svc)
	if err != nil {
		return nil, err
	}

	slots, err := s.portalClient.FetchRange(ctx, svc, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch semester schedule: %w", err)
	}

	index := BuildIndex(slots, s.location)
	if err := s.indexRepo.Replace(ctx, &semesterRepo.ReplaceInput{Index: index}); err != nil {
		return nil, fmt.Errorf("failed to persist semester index: %w", err)
	}

	s.log.Info("Semester index rebuilt", map[string]interface{}{
		"from":      from.Format(time.DateOnly),
		"to":        to.Format(time.DateOnly),
		"trainings": len(slots),
		"keys":      len(index),
	})

	return &RebuildOutput{
		From:      from,
		To:        to,
		Trainings: len(slots),
		Keys:      len(index),
	}, nil
}

func (s *service) bounds(ctx context.Context, svc *models.Session) (time.Time, time.Time, error) {
	if !s.from.IsZero() && !s.to.IsZero() {
		return s.from, s.to, nil
	}

	from, to, err := s.portalClient.FetchSemester(ctx, svc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrNoBounds, err)
	}

	return from, to, nil
}

// BuildIndex groups slots by recurring key. Each key's occurrences are
// ordered by start time with duplicates dropped.
func BuildIndex(slots []*models.TrainingSlot, loc *time.Location) map[models.RecurringKey][]models.TrainingRef {
	index := make(map[models.RecurringKey][]models.TrainingRef)
	seen := make(map[int64]bool, len(slots))

	for _, slot := range slots {
		if slot == nil || seen[slot.ID] {
			continue
		}
		seen[slot.ID] = true

		key := models.RecurringKeyFor(slot, loc)
		index[key] = append(index[key], models.TrainingRef{
			ID:    slot.ID,
			Start: slot.Start,
			End:   slot.End,
		})
	}

	for _, refs := range index {
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].Start.Before(refs[j].Start)
		})
	}

	return index
}
