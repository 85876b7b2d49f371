package autocheckin

// AutoCheckinError is a custom error type for auto check-in errors
type AutoCheckinError string

// Error implements the error interface
func (e AutoCheckinError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig           AutoCheckinError = "config cannot be nil"
	ErrNilRegistry         AutoCheckinError = "session registry cannot be nil"
	ErrNilPortalClient     AutoCheckinError = "portal client cannot be nil"
	ErrNilAutoCheckinRepo  AutoCheckinError = "auto check-in repository cannot be nil"
	ErrNilResolver         AutoCheckinError = "semester resolver cannot be nil"
	ErrNilNotifier         AutoCheckinError = "notifier cannot be nil"
	ErrNilMessaging        AutoCheckinError = "messaging service cannot be nil"
	ErrNilLocation         AutoCheckinError = "location cannot be nil"
	ErrInvalidInput        AutoCheckinError = "user ID is required"
	ErrNoMatchingTrainings AutoCheckinError = "no upcoming trainings match the recurring slot"
)
