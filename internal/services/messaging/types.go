package messaging

import (
	"time"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// ErrorType names a user-visible failure category. Every category renders
// to its own message.
type ErrorType string

const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAuthServerDown     ErrorType = "auth_server_down"
	ErrorTypePortalDown         ErrorType = "portal_down"
	ErrorTypeNotRegistered      ErrorType = "not_registered"
	ErrorTypeSessionExpired     ErrorType = "session_expired"
	ErrorTypeOfflineSession     ErrorType = "offline_session"
	ErrorTypeNoSeats            ErrorType = "no_seats"
	ErrorTypeCheckInClosed      ErrorType = "checkin_closed"
	ErrorTypeTrainingNotFound   ErrorType = "training_not_found"
	ErrorTypeNoMatchingSlots    ErrorType = "no_matching_slots"
	ErrorTypeNotAdmin           ErrorType = "not_admin"
	ErrorTypeInvalidInput       ErrorType = "invalid_input"
	ErrorTypeUnexpected         ErrorType = "unexpected"
)

// GetSeatAvailableMessageInput contains parameters for a seat-available alert
type GetSeatAvailableMessageInput struct {
	Slot *models.TrainingSlot

	// Recipients is the size of the fan-out this message is part of
	Recipients int
}

// GetSeatAvailableMessageOutput contains the rendered alert
type GetSeatAvailableMessageOutput struct {
	Title   string
	Message string
}

// GetExpiredMessageInput contains parameters for an expired subscription
type GetExpiredMessageInput struct {
	// Slot may be nil when the training vanished upstream
	Slot       *models.TrainingSlot
	TrainingID int64
}

// GetExpiredMessageOutput contains the rendered message
type GetExpiredMessageOutput struct {
	Title   string
	Message string
}

// GetCheckedInMessageInput contains parameters for a check-in confirmation
type GetCheckedInMessageInput struct {
	Slot *models.TrainingSlot

	// Automatic is set when the check-in came from a recurring subscription
	Automatic bool
}

// GetCheckedInMessageOutput contains the rendered confirmation
type GetCheckedInMessageOutput struct {
	Title   string
	Message string
}

// GetSlotVanishedMessageInput contains parameters for a removed recurring slot
type GetSlotVanishedMessageInput struct {
	Key models.RecurringKey
}

// GetSlotVanishedMessageOutput contains the rendered message
type GetSlotVanishedMessageOutput struct {
	Title   string
	Message string
}

// GetReloginMessageOutput contains the re-login prompt
type GetReloginMessageOutput struct {
	Title   string
	Message string
}

// GetWelcomeMessageInput contains parameters for the login greeting
type GetWelcomeMessageInput struct {
	// Registered is false for users who never logged in
	Registered bool
}

// GetWelcomeMessageOutput contains the rendered greeting
type GetWelcomeMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType
}

// GetErrorMessageOutput contains the rendered error
type GetErrorMessageOutput struct {
	Title   string
	Message string
}

// GetBroadcastSummaryMessageInput contains the counts of a broadcast
type GetBroadcastSummaryMessageInput struct {
	Attempted int
	Failed    int
}

// GetBroadcastSummaryMessageOutput contains the rendered summary
type GetBroadcastSummaryMessageOutput struct {
	Message string
}

// GetStatisticsMessageInput contains a student's attendance summary
type GetStatisticsMessageInput struct {
	Statistics *models.Statistics
}

// GetStatisticsMessageOutput contains the rendered summary
type GetStatisticsMessageOutput struct {
	Title   string
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Location is the timezone trainings are rendered in
	Location *time.Location

	// Seed fixes phrase selection. Zero seeds from the clock.
	Seed int64
}
