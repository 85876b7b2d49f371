package training

// TrainingError is a custom error type for chat-driven training actions
type TrainingError string

// Error implements the error interface
func (e TrainingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig           TrainingError = "config cannot be nil"
	ErrNilRegistry         TrainingError = "session registry cannot be nil"
	ErrNilPortalClient     TrainingError = "portal client cannot be nil"
	ErrNilAutoCheckin      TrainingError = "auto check-in service cannot be nil"
	ErrNilNotificationRepo TrainingError = "notification repository cannot be nil"
	ErrNilCredentialsRepo  TrainingError = "credentials repository cannot be nil"
	ErrNilNotifier         TrainingError = "notifier cannot be nil"
	ErrNilLocation         TrainingError = "location cannot be nil"
	ErrNotRegistered       TrainingError = "user has never logged in"
	ErrSessionExpired      TrainingError = "session expired"
	ErrNoSeats             TrainingError = "no free seats"
	ErrCheckInClosed       TrainingError = "check-in is not open"
	ErrNotAdmin            TrainingError = "only the administrator can broadcast"
	ErrEmptyMessage        TrainingError = "broadcast message cannot be empty"
	ErrNoPendingBroadcast  TrainingError = "no broadcast is waiting for confirmation"
	ErrInvalidInput        TrainingError = "invalid input"
)
