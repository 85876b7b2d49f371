package autocheckin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/sportbot/internal/common/clock"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/metrics"
	"github.com/KirkDiggler/sportbot/internal/common/uuid"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/notify"
	"github.com/KirkDiggler/sportbot/internal/portal"
	autocheckinRepo "github.com/KirkDiggler/sportbot/internal/repositories/autocheckin"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/semester"
	"github.com/KirkDiggler/sportbot/internal/services/session"
)

const jobName = "autocheckin"

// service implements the Service interface
type service struct {
	registry        session.Registry
	portalClient    portal.Client
	autocheckinRepo autocheckinRepo.Repository
	resolver        semester.Resolver
	notifier        notify.Notifier
	messaging       messaging.Service
	location        *time.Location
	lookahead       time.Duration
	clock           clock.Clock
	uuid            uuid.UUID
	log             logger.Logger

	// prompted remembers users already asked to log in again
	promptedMu sync.Mutex
	prompted   map[string]bool
}

// New creates a new auto check-in service
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

	if cfg.AutoCheckinRepo == nil {
		return nil, ErrNilAutoCheckinRepo
	}

	if cfg.Resolver == nil {
		return nil, ErrNilResolver
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	if cfg.Location == nil {
		return nil, ErrNilLocation
	}

	svc := &service{
		registry:        cfg.Registry,
		portalClient:    cfg.PortalClient,
		autocheckinRepo: cfg.AutoCheckinRepo,
		resolver:        cfg.Resolver,
		notifier:        cfg.Notifier,
		messaging:       cfg.Messaging,
		location:        cfg.Location,
		lookahead:       cfg.Lookahead,
		clock:           cfg.Clock,
		uuid:            cfg.UUID,
		log:             cfg.Logger,
		prompted:        make(map[string]bool),
	}

	// Set defaults for optional dependencies
	if svc.lookahead <= 0 {
		svc.lookahead = DefaultLookahead
	}
	if svc.clock == nil {
		svc.clock = &clock.DefaultClock{}
	}
	if svc.uuid == nil {
		svc.uuid = uuid.New()
	}
	if svc.log == nil {
		svc.log = logger.NewNoOpLogger()
	}
	svc.log = svc.log.WithFields(map[string]interface{}{"component": "autocheckin_reconciler"})

	return svc, nil
}

// Reconcile walks every user's recurring subscriptions once. Users and keys
// are isolated from each other's failures.
func (s *service) Reconcile(ctx context.Context) (*ReconcileOutput, error) {
	started := s.clock.Now()
	out := &ReconcileOutput{
		RunID: s.uuid.NewUUID(),
		Stops: make(map[Stop]int),
	}
	log := s.log.WithFields(map[string]interface{}{"run_id": out.RunID})

	userIDs, err := s.autocheckinRepo.ListUserIDs(ctx)
	if err != nil {
		metrics.ReconcileRuns.WithLabelValues(jobName, "failed").Inc()
		return out, fmt.Errorf("failed to list subscribed users: %w", err)
	}

	for _, userID := range userIDs {
		out.Users++
		if err := s.reconcileUser(ctx, log.WithFields(map[string]interface{}{"user_id": userID}), userID, out); err != nil {
			metrics.ReconcileItemFailures.WithLabelValues(jobName, "user").Inc()
			log.Warn("User reconciliation failed", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	metrics.ReconcileRuns.WithLabelValues(jobName, "ok").Inc()
	metrics.ReconcileDuration.WithLabelValues(jobName).Observe(s.clock.Now().Sub(started).Seconds())
	log.Debug("Auto check-in tick finished", map[string]interface{}{
		"users":   out.Users,
		"skipped": out.Skipped,
	})

	return out, nil
}

func (s *service) reconcileUser(ctx context.Context, log logger.Logger, userID string, out *ReconcileOutput) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic reconciling user: %v", r)
		}
	}()

	userSession := s.usableSession(ctx, userID)
	if userSession == nil {
		out.Skipped++
		s.promptRelogin(ctx, log, userID)
		return nil
	}
	s.clearPrompt(userID)

	subs, err := s.autocheckinRepo.GetKeys(ctx, &autocheckinRepo.GetKeysInput{UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}

	keys := make([]models.RecurringKey, 0, len(subs.Subscriptions))
	for key := range subs.Subscriptions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	for _, key := range keys {
		keyLog := log.WithFields(map[string]interface{}{"key": key.String()})
		stop, err := s.reconcileKey(ctx, keyLog, userSession, key, subs.Subscriptions[key])
		out.Stops[stop]++
		metrics.AutoCheckinOutcomes.WithLabelValues(string(stop)).Inc()
		if err != nil {
			metrics.ReconcileItemFailures.WithLabelValues(jobName, string(stop)).Inc()
			keyLog.Warn("Recurring key stopped on error", map[string]interface{}{
				"stop":  string(stop),
				"error": err.Error(),
			})
		}
	}

	return nil
}

// usableSession returns the user's session if it can check in right now.
// Offline sessions browse only, so they count as unusable here.
func (s *service) usableSession(ctx context.Context, userID string) *models.Session {
	if !s.registry.EnsureUsable(ctx, userID) {
		return nil
	}

	current := s.registry.Get(userID)
	if current == nil || current.IsOffline() {
		return nil
	}

	return current
}

// reconcileKey walks one key's occurrences in order. It never skips a nearer
// occurrence to act on a later one and acts at most once.
func (s *service) reconcileKey(ctx context.Context, log logger.Logger, userSession *models.Session, key models.RecurringKey, refs []models.TrainingRef) (Stop, error) {
	now := s.clock.Now()

	for _, ref := range refs {
		slot, err := s.portalClient.FetchDetail(ctx, userSession, ref.ID)
		if errors.Is(err, portal.ErrTrainingNotFound) {
			return s.vanished(ctx, log, userSession.UserID, key)
		}
		if err != nil {
			return StopFetchFailed, err
		}

		// Stale or already satisfied entries never block the ones behind them
		if slot.HasEnded(now) || slot.CheckedIn {
			if err := s.consume(ctx, userSession.UserID, key, ref.ID); err != nil {
				return StopStoreFailed, err
			}
			continue
		}

		if slot.Start.After(now.Add(s.lookahead)) {
			return StopNotYetOpen, nil
		}

		if slot.FreeSeats() == 0 {
			return StopNoSeat, nil
		}

		if !slot.CanCheckIn {
			return StopNotYetOpen, nil
		}

		// A failed check-in keeps the entry so the next tick retries it
		if err := s.portalClient.CheckIn(ctx, userSession, slot.ID); err != nil {
			return StopCheckInFailed, err
		}

		if err := s.consume(ctx, userSession.UserID, key, slot.ID); err != nil {
			return StopStoreFailed, err
		}
		s.confirm(ctx, log, userSession.UserID, slot)

		log.Info("Checked in automatically", map[string]interface{}{
			"training_id": slot.ID,
			"start":       slot.Start.In(s.location).Format(time.RFC3339),
		})

		return StopActed, nil
	}

	return s.refresh(ctx, log, userSession.UserID, key)
}

// refresh refills an exhausted key from the semester index with occurrences
// that start after the latest one already consumed, so a consumed occurrence
// never comes back. Nothing left deletes the key.
func (s *service) refresh(ctx context.Context, log logger.Logger, userID string, key models.RecurringKey) (Stop, error) {
	covered, err := s.autocheckinRepo.CoveredUntil(ctx, &autocheckinRepo.GetKeyInput{UserID: userID, Key: key})
	if err != nil {
		return StopStoreFailed, err
	}

	refs, err := s.resolver.Resolve(ctx, key)
	if err != nil {
		return StopFetchFailed, fmt.Errorf("failed to resolve recurring key: %w", err)
	}

	upcoming := s.upcoming(refs, covered)
	if len(upcoming) == 0 {
		if err := s.autocheckinRepo.DeleteKey(ctx, &autocheckinRepo.DeleteKeyInput{UserID: userID, Key: key}); err != nil {
			return StopStoreFailed, err
		}
		log.Info("Recurring key exhausted and removed", nil)
		return StopExhausted, nil
	}

	err = s.autocheckinRepo.SetKey(ctx, &autocheckinRepo.SetKeyInput{
		UserID: userID,
		Key:    key,
		Refs:   upcoming,
	})
	if err != nil {
		return StopStoreFailed, err
	}

	log.Info("Recurring key refreshed", map[string]interface{}{"occurrences": len(upcoming)})
	return StopExhausted, nil
}

func (s *service) vanished(ctx context.Context, log logger.Logger, userID string, key models.RecurringKey) (Stop, error) {
	if err := s.autocheckinRepo.DeleteKey(ctx, &autocheckinRepo.DeleteKeyInput{UserID: userID, Key: key}); err != nil {
		return StopStoreFailed, err
	}

	rendered, err := s.messaging.GetSlotVanishedMessage(ctx, &messaging.GetSlotVanishedMessageInput{Key: key})
	if err != nil {
		return StopVanished, fmt.Errorf("failed to render vanished message: %w", err)
	}

	notify.Send(ctx, s.notifier, log, userID, &notify.Message{
		Kind:  notify.KindSlotVanished,
		Title: rendered.Title,
		Text:  rendered.Message,
	})

	return StopVanished, nil
}

func (s *service) confirm(ctx context.Context, log logger.Logger, userID string, slot *models.TrainingSlot) {
	rendered, err := s.messaging.GetCheckedInMessage(ctx, &messaging.GetCheckedInMessageInput{
		Slot:      slot,
		Automatic: true,
	})
	if err != nil {
		log.Warn("Failed to render confirmation", map[string]interface{}{"error": err.Error()})
		return
	}

	notify.Send(ctx, s.notifier, log, userID, &notify.Message{
		Kind:  notify.KindCheckedIn,
		Title: rendered.Title,
		Text:  rendered.Message,
	})
}

// promptRelogin asks the user to log in again, once until the session
// becomes usable again
func (s *service) promptRelogin(ctx context.Context, log logger.Logger, userID string) {
	s.promptedMu.Lock()
	already := s.prompted[userID]
	s.prompted[userID] = true
	s.promptedMu.Unlock()

	if already {
		return
	}

	rendered, err := s.messaging.GetReloginMessage(ctx)
	if err != nil {
		log.Warn("Failed to render re-login prompt", map[string]interface{}{"error": err.Error()})
		return
	}

	notify.Send(ctx, s.notifier, log, userID, &notify.Message{
		Kind:  notify.KindReloginRequired,
		Title: rendered.Title,
		Text:  rendered.Message,
	})
}

func (s *service) clearPrompt(userID string) {
	s.promptedMu.Lock()
	defer s.promptedMu.Unlock()

	delete(s.prompted, userID)
}

func (s *service) consume(ctx context.Context, userID string, key models.RecurringKey, trainingID int64) error {
	_, err := s.autocheckinRepo.RemoveTraining(ctx, &autocheckinRepo.RemoveTrainingInput{
		UserID:     userID,
		Key:        key,
		TrainingID: trainingID,
	})
	return err
}

// upcoming keeps the refs that have not ended and start after covered
func (s *service) upcoming(refs []models.TrainingRef, covered time.Time) []models.TrainingRef {
	now := s.clock.Now()
	out := make([]models.TrainingRef, 0, len(refs))
	for _, ref := range refs {
		if !ref.End.After(now) || !ref.Start.After(covered) {
			continue
		}
		out = append(out, ref)
	}
	return out
}

// Subscribe resolves a recurring slot and stores its upcoming occurrences
func (s *service) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	refs, err := s.resolver.Resolve(ctx, input.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recurring key: %w", err)
	}

	upcoming := s.upcoming(refs, time.Time{})
	if len(upcoming) == 0 {
		return nil, ErrNoMatchingTrainings
	}

	err = s.autocheckinRepo.SetKey(ctx, &autocheckinRepo.SetKeyInput{
		UserID: input.UserID,
		Key:    input.Key,
		Refs:   upcoming,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.log.Info("Recurring subscription created", map[string]interface{}{
		"user_id":     input.UserID,
		"key":         input.Key.String(),
		"occurrences": len(upcoming),
	})

	return &SubscribeOutput{
		Key:  input.Key,
		Refs: upcoming,
	}, nil
}

// SubscribeTraining subscribes to the recurring slot a training belongs to
func (s *service) SubscribeTraining(ctx context.Context, input *SubscribeTrainingInput) (*SubscribeOutput, error) {
	if input == nil || input.UserID == "" || input.TrainingID <= 0 {
		return nil, ErrInvalidInput
	}

	reader := s.registry.Get(input.UserID)
	if reader == nil {
		svcSession, err := s.registry.ServiceSession(ctx)
		if err != nil {
			return nil, err
		}
		reader = svcSession
	}

	slot, err := s.portalClient.FetchDetail(ctx, reader, input.TrainingID)
	if err != nil {
		return nil, err
	}

	return s.Subscribe(ctx, &SubscribeInput{
		UserID: input.UserID,
		Key:    models.RecurringKeyFor(slot, s.location),
	})
}

// Unsubscribe drops a recurring subscription
func (s *service) Unsubscribe(ctx context.Context, input *UnsubscribeInput) error {
	if input == nil || input.UserID == "" {
		return ErrInvalidInput
	}

	return s.autocheckinRepo.DeleteKey(ctx, &autocheckinRepo.DeleteKeyInput{
		UserID: input.UserID,
		Key:    input.Key,
	})
}

// List returns a user's recurring subscriptions
func (s *service) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	subs, err := s.autocheckinRepo.GetKeys(ctx, &autocheckinRepo.GetKeysInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	return &ListOutput{Subscriptions: subs.Subscriptions}, nil
}

// Consume drops one occurrence. Consuming twice is a no-op.
func (s *service) Consume(ctx context.Context, input *ConsumeInput) error {
	if input == nil || input.UserID == "" {
		return ErrInvalidInput
	}

	return s.consume(ctx, input.UserID, input.Key, input.TrainingID)
}
