package notification

// NotificationError is a custom error type for notification service errors
type NotificationError string

// Error implements the error interface
func (e NotificationError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig           NotificationError = "config cannot be nil"
	ErrNilRegistry         NotificationError = "session registry cannot be nil"
	ErrNilPortalClient     NotificationError = "portal client cannot be nil"
	ErrNilNotificationRepo NotificationError = "notification repository cannot be nil"
	ErrNilNotifier         NotificationError = "notifier cannot be nil"
	ErrNilMessaging        NotificationError = "messaging service cannot be nil"
	ErrNoServiceSession    NotificationError = "no service session, tick skipped"
	ErrInvalidInput        NotificationError = "user ID and training ID are required"
)
