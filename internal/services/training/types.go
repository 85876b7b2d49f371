package training

import (
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

const (
	// myWeekDays is how many days GetMyWeek looks ahead, today included
	myWeekDays = 8

	// broadcastConfirmWindow is how long a prepared broadcast waits for
	// its sender's confirmation
	broadcastConfirmWindow = 10 * time.Minute
)

// Config holds the dependencies of the training service
type Config struct {
	Registry         session.Registry
	PortalClient     portal.Client
	AutoCheckin      autocheckin.Service
	NotificationRepo notificationRepo.Repository
	CredentialsRepo  credentialsRepo.Repository
	Notifier         notify.Notifier

	// Location is the portal timezone
	Location *time.Location

	// AdminUserID may broadcast to every registered user
	AdminUserID string

	// Optional
	Clock  clock.Clock
	Logger logger.Logger
}

// GetDayInput contains parameters for one day's schedule
type GetDayInput struct {
	UserID string
	Day    time.Time
}

// GetDayOutput contains one day's trainings ordered by start
type GetDayOutput struct {
	Day   time.Time
	Slots []*models.TrainingSlot
}

// GetDetailInput contains parameters for one training
type GetDetailInput struct {
	UserID     string
	TrainingID int64
}

// GetDetailOutput contains the live state of one training
type GetDetailOutput struct {
	Slot *models.TrainingSlot

	// Notifying is set when the user waits for a seat on it
	Notifying bool
}

// ToggleCheckInInput contains parameters for a manual check-in toggle
type ToggleCheckInInput struct {
	UserID     string
	TrainingID int64
}

// ToggleCheckInOutput reports the state after the toggle
type ToggleCheckInOutput struct {
	Slot      *models.TrainingSlot
	CheckedIn bool
}

// GetMyWeekInput contains parameters for the user's upcoming trainings
type GetMyWeekInput struct {
	UserID string
}

// GetMyWeekOutput contains the trainings the user is checked in to
type GetMyWeekOutput struct {
	Slots []*models.TrainingSlot
}

// GetStatisticsInput contains parameters for attendance statistics
type GetStatisticsInput struct {
	UserID string
}

// PrepareBroadcastInput contains a message for every registered user
type PrepareBroadcastInput struct {
	SenderID string
	Text     string
}

// PrepareBroadcastOutput describes the broadcast waiting for confirmation
type PrepareBroadcastOutput struct {
	Text       string
	Recipients int
}

// ConfirmBroadcastInput answers a prepared broadcast
type ConfirmBroadcastInput struct {
	SenderID string

	// Send is false when the sender cancels
	Send bool
}

// BroadcastOutput reports how the broadcast went
type BroadcastOutput struct {
	Cancelled bool
	Attempted int
	Failed    int
}

type pendingBroadcast struct {
	text     string
	prepared time.Time
}
