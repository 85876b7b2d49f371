package session

// SessionError is a custom error type for session registry failures
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig          SessionError = "config cannot be nil"
	ErrNilPortalClient    SessionError = "portal client cannot be nil"
	ErrNilCredentialsRepo SessionError = "credentials repository cannot be nil"
	ErrNoServiceAccount   SessionError = "service account is not configured"
	ErrServiceUnavailable SessionError = "service session is unavailable"
	ErrEmptyUserID        SessionError = "user id cannot be empty"
)
