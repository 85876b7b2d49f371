package autocheckin

import (
	"time"

	"github.com/KirkDiggler/sportbot/internal/common/clock"
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/uuid"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/notify"
	"github.com/KirkDiggler/sportbot/internal/portal"
	autocheckinRepo "github.com/KirkDiggler/sportbot/internal/repositories/autocheckin"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/semester"
	"github.com/KirkDiggler/sportbot/internal/services/session"
)

// DefaultLookahead is how far ahead the portal opens check-in
const DefaultLookahead = 7 * 24 * time.Hour

// Config holds the dependencies of the auto check-in service
type Config struct {
	Registry        session.Registry
	PortalClient    portal.Client
	AutoCheckinRepo autocheckinRepo.Repository
	Resolver        semester.Resolver
	Notifier        notify.Notifier
	Messaging       messaging.Service

	// Location is the portal timezone recurring keys are derived in
	Location *time.Location

	// Lookahead defaults to DefaultLookahead
	Lookahead time.Duration

	// Optional
	Clock  clock.Clock
	UUID   uuid.UUID
	Logger logger.Logger
}

// Stop names why processing of one recurring key ended for this tick
type Stop string

const (
	// StopVanished: the portal no longer knows the training, key deleted
	StopVanished Stop = "vanished"

	// StopFetchFailed: the detail fetch failed, retried next tick
	StopFetchFailed Stop = "fetch_failed"

	// StopNotYetOpen: the next occurrence is outside the check-in window
	StopNotYetOpen Stop = "not_yet_open"

	// StopNoSeat: the next occurrence is full
	StopNoSeat Stop = "no_seat"

	// StopActed: one check-in was made
	StopActed Stop = "acted"

	// StopCheckInFailed: the portal rejected the check-in, entry kept
	StopCheckInFailed Stop = "checkin_failed"

	// StopStoreFailed: the subscription store could not be updated
	StopStoreFailed Stop = "store_failed"

	// StopExhausted: every listed occurrence was consumed, list refreshed
	StopExhausted Stop = "exhausted"
)

// ReconcileOutput summarizes one pass over every subscribed user
type ReconcileOutput struct {
	RunID string

	// Users counts users visited, Skipped those without a usable session
	Users   int
	Skipped int

	// Stops counts how each processed key ended
	Stops map[Stop]int
}

// SubscribeInput contains parameters for a recurring subscription
type SubscribeInput struct {
	UserID string
	Key    models.RecurringKey
}

// SubscribeOutput contains the occurrences the subscription will act on
type SubscribeOutput struct {
	Key  models.RecurringKey
	Refs []models.TrainingRef
}

// SubscribeTrainingInput subscribes to the recurring slot of a training
type SubscribeTrainingInput struct {
	UserID     string
	TrainingID int64
}

// UnsubscribeInput contains parameters for dropping a recurring subscription
type UnsubscribeInput struct {
	UserID string
	Key    models.RecurringKey
}

// ListInput contains parameters for listing subscriptions
type ListInput struct {
	UserID string
}

// ListOutput contains a user's recurring subscriptions
type ListOutput struct {
	Subscriptions map[models.RecurringKey][]models.TrainingRef
}

// ConsumeInput identifies one occurrence of a subscription
type ConsumeInput struct {
	UserID     string
	Key        models.RecurringKey
	TrainingID int64
}
