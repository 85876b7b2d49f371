package notification

import (
	"github.com/KirkDiggler/sportbot/internal/common/clock"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/uuid"
	"github.com/KirkDiggler/sportbot/internal/notify"
	"github.com/KirkDiggler/sportbot/internal/portal"
	notificationRepo "github.com/KirkDiggler/sportbot/internal/repositories/notification"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/session"
)

// Config holds the dependencies of the notification service
type Config struct {
	Registry         session.Registry
	PortalClient     portal.Client
	NotificationRepo notificationRepo.Repository
	Notifier         notify.Notifier
	Messaging        messaging.Service

	// Optional
	Clock  clock.Clock
	UUID   uuid.UUID
	Logger logger.Logger
}

// Outcome is what one reconciliation did with a training
type Outcome string

const (
	OutcomePending       Outcome = "pending"
	OutcomeSeatAvailable Outcome = "seat_available"
	OutcomeExpired       Outcome = "expired"
	OutcomeFailed        Outcome = "failed"
)

// ReconcileOutput summarizes one pass over every subscribed training
type ReconcileOutput struct {
	RunID string

	// Outcomes maps each training to what happened to it this pass
	Outcomes map[int64]Outcome

	// Notified counts attempted deliveries, Failed the ones that did not land
	Notified int
	Failed   int
}

// Count returns how many trainings ended with the outcome
func (o *ReconcileOutput) Count(outcome Outcome) int {
	n := 0
	for _, got := range o.Outcomes {
		if got == outcome {
			n++
		}
	}
	return n
}

// ToggleInput contains parameters for toggling a seat notification
type ToggleInput struct {
	UserID     string
	TrainingID int64
}

// ToggleOutput reports the subscription state after the toggle
type ToggleOutput struct {
	Subscribed bool
}
