package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sportbot/internal/common/clock"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/metrics"
	"github.com/KirkDiggler/sportbot/internal/common/uuid"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/notify"
	"github.com/KirkDiggler/sportbot/internal/portal"
	notificationRepo "github.com/KirkDiggler/sportbot/internal/repositories/notification"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/session"
)

const jobName = "notifications"

// service implements the Service interface
type service struct {
	registry         session.Registry
	portalClient     portal.Client
	notificationRepo notificationRepo.Repository
	notifier         notify.Notifier
	messaging        messaging.Service
	clock            clock.Clock
	uuid             uuid.UUID
	log              logger.Logger
}

// New creates a new notification service
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

	if cfg.NotificationRepo == nil {
		return nil, ErrNilNotificationRepo
	}

	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	svc := &service{
		registry:         cfg.Registry,
		portalClient:     cfg.PortalClient,
		notificationRepo: cfg.NotificationRepo,
		notifier:         cfg.Notifier,
		messaging:        cfg.Messaging,
		clock:            cfg.Clock,
		uuid:             cfg.UUID,
		log:              cfg.Logger,
	}

	// Set defaults for optional dependencies
	if svc.clock == nil {
		svc.clock = &clock.DefaultClock{}
	}
	if svc.uuid == nil {
		svc.uuid = uuid.New()
	}
	if svc.log == nil {
		svc.log = logger.NewNoOpLogger()
	}
	svc.log = svc.log.WithFields(map[string]interface{}{"component": "notification_reconciler"})

	return svc, nil
}

// Reconcile re-checks every training that has subscribers. Trainings are
// independent: a failure on one never stops the others.
func (s *service) Reconcile(ctx context.Context) (*ReconcileOutput, error) {
	started := s.clock.Now()
	out := &ReconcileOutput{
		RunID:    s.uuid.NewUUID(),
		Outcomes: make(map[int64]Outcome),
	}
	log := s.log.WithFields(map[string]interface{}{"run_id": out.RunID})

	svcSession, err := s.registry.ServiceSession(ctx)
	if err != nil {
		metrics.ReconcileRuns.WithLabelValues(jobName, "skipped").Inc()
		log.Warn("Skipping notification tick", map[string]interface{}{"error": err.Error()})
		return out, fmt.Errorf("%w: %v", ErrNoServiceSession, err)
	}

	trainingIDs, err := s.notificationRepo.ListTrainingIDs(ctx)
	if err != nil {
		metrics.ReconcileRuns.WithLabelValues(jobName, "failed").Inc()
		return out, fmt.Errorf("failed to list subscribed trainings: %w", err)
	}

	for _, trainingID := range trainingIDs {
		outcome, err := s.reconcileTraining(ctx, log, svcSession, trainingID, out)
		out.Outcomes[trainingID] = outcome
		if err != nil {
			metrics.ReconcileItemFailures.WithLabelValues(jobName, "training").Inc()
			log.Warn("Training reconciliation failed", map[string]interface{}{
				"training_id": trainingID,
				"error":       err.Error(),
			})
		}
	}

	metrics.ReconcileRuns.WithLabelValues(jobName, "ok").Inc()
	metrics.ReconcileDuration.WithLabelValues(jobName).Observe(s.clock.Now().Sub(started).Seconds())
	log.Debug("Notification tick finished", map[string]interface{}{
		"trainings": len(trainingIDs),
		"notified":  out.Notified,
		"failed":    out.Failed,
	})

	return out, nil
}

// reconcileTraining decides the fate of one training's subscription. Panics
// are turned into errors so the pass carries on.
func (s *service) reconcileTraining(ctx context.Context, log logger.Logger, svcSession *models.Session, trainingID int64, out *ReconcileOutput) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeFailed
			err = fmt.Errorf("panic reconciling training %d: %v", trainingID, r)
		}
	}()

	slot, err := s.portalClient.FetchDetail(ctx, svcSession, trainingID)
	switch {
	case errors.Is(err, portal.ErrTrainingNotFound):
		// A training that vanished can never free a seat
		return s.expire(ctx, log, trainingID, nil, out)
	case err != nil:
		return OutcomeFailed, fmt.Errorf("failed to fetch training: %w", err)
	}

	if slot.HasEnded(s.clock.Now()) {
		return s.expire(ctx, log, trainingID, slot, out)
	}

	if slot.FreeSeats() > 0 {
		return s.seatAvailable(ctx, log, slot, out)
	}

	return OutcomePending, nil
}

func (s *service) expire(ctx context.Context, log logger.Logger, trainingID int64, slot *models.TrainingSlot, out *ReconcileOutput) (Outcome, error) {
	rendered, err := s.messaging.GetExpiredMessage(ctx, &messaging.GetExpiredMessageInput{
		Slot:       slot,
		TrainingID: trainingID,
	})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to render expiry message: %w", err)
	}

	msg := &notify.Message{
		Kind:  notify.KindExpired,
		Title: rendered.Title,
		Text:  rendered.Message,
	}
	if err := s.fireAndDelete(ctx, log, trainingID, msg, out); err != nil {
		return OutcomeFailed, err
	}

	return OutcomeExpired, nil
}

func (s *service) seatAvailable(ctx context.Context, log logger.Logger, slot *models.TrainingSlot, out *ReconcileOutput) (Outcome, error) {
	userIDs, err := s.notificationRepo.GetUsers(ctx, &notificationRepo.GetUsersInput{TrainingID: slot.ID})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to list subscribers: %w", err)
	}

	rendered, err := s.messaging.GetSeatAvailableMessage(ctx, &messaging.GetSeatAvailableMessageInput{
		Slot:       slot,
		Recipients: len(userIDs),
	})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to render seat message: %w", err)
	}

	msg := &notify.Message{
		Kind:    notify.KindSeatAvailable,
		Title:   rendered.Title,
		Text:    rendered.Message,
		Actions: []notify.Action{notify.CheckInAction(slot.ID)},
	}
	if err := s.deliver(ctx, log, slot.ID, userIDs, msg, out); err != nil {
		return OutcomeFailed, err
	}

	return OutcomeSeatAvailable, nil
}

func (s *service) fireAndDelete(ctx context.Context, log logger.Logger, trainingID int64, msg *notify.Message, out *ReconcileOutput) error {
	userIDs, err := s.notificationRepo.GetUsers(ctx, &notificationRepo.GetUsersInput{TrainingID: trainingID})
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	return s.deliver(ctx, log, trainingID, userIDs, msg, out)
}

// deliver fans the message out and then drops the subscription whatever the
// per-recipient results were, so each subscription fires at most once
func (s *service) deliver(ctx context.Context, log logger.Logger, trainingID int64, userIDs []string, msg *notify.Message, out *ReconcileOutput) error {
	result := notify.Fanout(ctx, s.notifier, log, userIDs, msg)
	out.Notified += result.Attempted
	out.Failed += result.Failed

	if err := s.notificationRepo.Delete(ctx, &notificationRepo.DeleteInput{TrainingID: trainingID}); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	log.Info("Subscription fired", map[string]interface{}{
		"training_id": trainingID,
		"kind":        string(msg.Kind),
		"attempted":   result.Attempted,
		"failed":      result.Failed,
	})

	return nil
}

// Toggle subscribes or unsubscribes a user from a training
func (s *service) Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error) {
	if input == nil || input.UserID == "" || input.TrainingID <= 0 {
		return nil, ErrInvalidInput
	}

	subscribed, err := s.notificationRepo.HasUser(ctx, &notificationRepo.HasUserInput{
		TrainingID: input.TrainingID,
		UserID:     input.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read subscription: %w", err)
	}

	if subscribed {
		err = s.notificationRepo.RemoveUser(ctx, &notificationRepo.RemoveUserInput{
			TrainingID: input.TrainingID,
			UserID:     input.UserID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to unsubscribe: %w", err)
		}
		return &ToggleOutput{Subscribed: false}, nil
	}

	err = s.notificationRepo.AddUser(ctx, &notificationRepo.AddUserInput{
		TrainingID: input.TrainingID,
		UserID:     input.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	return &ToggleOutput{Subscribed: true}, nil
}
