package training

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/sportbot/internal/common/clock"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/notify"
	"github.com/KirkDiggler/sportbot/internal/portal"
	credentialsRepo "github.com/KirkDiggler/sportbot/internal/repositories/credentials"
	notificationRepo "github.com/KirkDiggler/sportbot/internal/repositories/notification"
	"github.com/KirkDiggler/sportbot/internal/services/autocheckin"
	"github.com/KirkDiggler/sportbot/internal/services/session"
)

// service implements the Service interface
type service struct {
	registry         session.Registry
	portalClient     portal.Client
	autoCheckin      autocheckin.Service
	notificationRepo notificationRepo.Repository
	credentialsRepo  credentialsRepo.Repository
	notifier         notify.Notifier
	location         *time.Location
	adminUserID      string
	clock            clock.Clock
	log              logger.Logger

	pendingMu sync.Mutex
	pending   map[string]pendingBroadcast
}

// New creates a new training service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}

	if cfg.PortalClient == nil {
		return nil, ErrNilPortalClient
	}

	if cfg.AutoCheckin == nil {
		return nil, ErrNilAutoCheckin
	}

	if cfg.NotificationRepo == nil {
		return nil, ErrNilNotificationRepo
	}

	if cfg.CredentialsRepo == nil {
		return nil, ErrNilCredentialsRepo
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Location == nil {
		return nil, ErrNilLocation
	}

	svc := &service{
		registry:         cfg.Registry,
		portalClient:     cfg.PortalClient,
		autoCheckin:      cfg.AutoCheckin,
		notificationRepo: cfg.NotificationRepo,
		credentialsRepo:  cfg.CredentialsRepo,
		notifier:         cfg.Notifier,
		location:         cfg.Location,
		adminUserID:      cfg.AdminUserID,
		clock:            cfg.Clock,
		log:              cfg.Logger,
		pending:          make(map[string]pendingBroadcast),
	}

	if svc.clock == nil {
		svc.clock = &clock.DefaultClock{}
	}
	if svc.log == nil {
		svc.log = logger.NewNoOpLogger()
	}
	svc.log = svc.log.WithFields(map[string]interface{}{"component": "training"})

	return svc, nil
}

// sessionFor returns the user's session, rehydrating it when needed. Offline
// sessions are returned as is; callers that need a portal login check for it.
func (s *service) sessionFor(ctx context.Context, userID string) (*models.Session, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	if s.registry.EnsureUsable(ctx, userID) {
		if current := s.registry.Get(userID); current != nil {
			return current, nil
		}
	}

	if s.registry.Has(userID) {
		return nil, ErrSessionExpired
	}

	return nil, ErrNotRegistered
}

func (s *service) onlineSessionFor(ctx context.Context, userID string) (*models.Session, error) {
	userSession, err := s.sessionFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if userSession.IsOffline() {
		return nil, portal.ErrOfflineSession
	}

	return userSession, nil
}

// GetDay returns one day's schedule ordered by start time
func (s *service) GetDay(ctx context.Context, input *GetDayInput) (*GetDayOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	userSession, err := s.sessionFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	day := input.Day
	if day.IsZero() {
		day = s.clock.Now()
	}
	day = clock.StartOfDay(day, s.location)

	slots, err := s.portalClient.FetchDay(ctx, userSession, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day: %w", err)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return &GetDayOutput{Day: day, Slots: slots}, nil
}

// GetDetail returns the live state of one training
func (s *service) GetDetail(ctx context.Context, input *GetDetailInput) (*GetDetailOutput, error) {
	if input == nil || input.TrainingID <= 0 {
		return nil, ErrInvalidInput
	}

	userSession, err := s.sessionFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	slot, err := s.portalClient.FetchDetail(ctx, userSession, input.TrainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch training: %w", err)
	}

	notifying, err := s.notificationRepo.HasUser(ctx, &notificationRepo.HasUserInput{
		TrainingID: input.TrainingID,
		UserID:     input.UserID,
	})
	if err != nil {
		// The detail view still works without the flag
		s.log.Warn("Failed to read notification flag", map[string]interface{}{
			"user_id":     input.UserID,
			"training_id": input.TrainingID,
			"error":       err.Error(),
		})
	}

	return &GetDetailOutput{Slot: slot, Notifying: notifying}, nil
}

// ToggleCheckIn cancels an existing check-in or books a seat
func (s *service) ToggleCheckIn(ctx context.Context, input *ToggleCheckInInput) (*ToggleCheckInOutput, error) {
	if input == nil || input.TrainingID <= 0 {
		return nil, ErrInvalidInput
	}

	userSession, err := s.onlineSessionFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	slot, err := s.portalClient.FetchDetail(ctx, userSession, input.TrainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch training: %w", err)
	}

	if slot.CheckedIn {
		if err := s.portalClient.CancelCheckIn(ctx, userSession, slot.ID); err != nil {
			return nil, fmt.Errorf("failed to cancel check-in: %w", err)
		}
		slot.CheckedIn = false
		slot.Load--

		return &ToggleCheckInOutput{Slot: slot, CheckedIn: false}, nil
	}

	if slot.FreeSeats() <= 0 {
		return nil, ErrNoSeats
	}
	if !slot.CanCheckIn {
		return nil, ErrCheckInClosed
	}

	if err := s.portalClient.CheckIn(ctx, userSession, slot.ID); err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}
	slot.CheckedIn = true
	slot.Load++

	// A manual check-in satisfies the auto check-in for the same occurrence
	err = s.autoCheckin.Consume(ctx, &autocheckin.ConsumeInput{
		UserID:     input.UserID,
		Key:        models.RecurringKeyFor(slot, s.location),
		TrainingID: slot.ID,
	})
	if err != nil {
		s.log.Warn("Failed to consume auto check-in entry", map[string]interface{}{
			"user_id":     input.UserID,
			"training_id": slot.ID,
			"error":       err.Error(),
		})
	}

	s.log.Info("Checked in manually", map[string]interface{}{
		"user_id":     input.UserID,
		"training_id": slot.ID,
	})

	return &ToggleCheckInOutput{Slot: slot, CheckedIn: true}, nil
}

// GetMyWeek returns the trainings the user is checked in to, from today on
func (s *service) GetMyWeek(ctx context.Context, input *GetMyWeekInput) (*GetMyWeekOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	userSession, err := s.onlineSessionFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	from := s.clock.Now().In(s.location)
	to := from.AddDate(0, 0, myWeekDays-1)

	slots, err := s.portalClient.FetchRange(ctx, userSession, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainings: %w", err)
	}

	mine := make([]*models.TrainingSlot, 0)
	for _, slot := range slots {
		if slot.CheckedIn {
			mine = append(mine, slot)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Start.Before(mine[j].Start)
	})

	return &GetMyWeekOutput{Slots: mine}, nil
}

// GetStatistics returns the user's sport hours
func (s *service) GetStatistics(ctx context.Context, input *GetStatisticsInput) (*models.Statistics, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	userSession, err := s.onlineSessionFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	stats, err := s.portalClient.FetchStatistics(ctx, userSession)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statistics: %w", err)
	}

	return stats, nil
}

// PrepareBroadcast validates a broadcast and holds it for the sender's
// confirmation. A newer message replaces a held one.
func (s *service) PrepareBroadcast(ctx context.Context, input *PrepareBroadcastInput) (*PrepareBroadcastOutput, error) {
	if input == nil || input.SenderID == "" {
		return nil, ErrInvalidInput
	}

	if err := s.requireAdmin(input.SenderID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	userIDs, err := s.credentialsRepo.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.pendingMu.Lock()
	s.pending[input.SenderID] = pendingBroadcast{text: text, prepared: s.clock.Now()}
	s.pendingMu.Unlock()

	return &PrepareBroadcastOutput{Text: text, Recipients: len(userIDs)}, nil
}

// ConfirmBroadcast sends the held message to every user with stored
// credentials, or drops it
func (s *service) ConfirmBroadcast(ctx context.Context, input *ConfirmBroadcastInput) (*BroadcastOutput, error) {
	if input == nil || input.SenderID == "" {
		return nil, ErrInvalidInput
	}

	if err := s.requireAdmin(input.SenderID); err != nil {
		return nil, err
	}

	s.pendingMu.Lock()
	held, ok := s.pending[input.SenderID]
	delete(s.pending, input.SenderID)
	s.pendingMu.Unlock()

	if !ok || s.clock.Now().Sub(held.prepared) > broadcastConfirmWindow {
		return nil, ErrNoPendingBroadcast
	}

	if !input.Send {
		s.log.Info("Broadcast cancelled", nil)
		return &BroadcastOutput{Cancelled: true}, nil
	}

	userIDs, err := s.credentialsRepo.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := notify.Fanout(ctx, s.notifier, s.log, userIDs, &notify.Message{
		Kind: notify.KindBroadcast,
		Text: held.text,
	})

	s.log.Info("Broadcast sent", map[string]interface{}{
		"attempted": result.Attempted,
		"failed":    result.Failed,
	})

	return &BroadcastOutput{Attempted: result.Attempted, Failed: result.Failed}, nil
}

func (s *service) requireAdmin(userID string) error {
	if s.adminUserID == "" || userID != s.adminUserID {
		return ErrNotAdmin
	}
	return nil
}
