package portal

// PortalError is a custom error type for sports portal failures
type PortalError string

// Error implements the error interface
func (e PortalError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidCredentials PortalError = "invalid portal credentials"
	ErrServerUnavailable  PortalError = "sports portal is unavailable"
	ErrAuthServerError    PortalError = "authentication server error"
	ErrTrainingNotFound   PortalError = "training not found"
	ErrUnexpectedStatus   PortalError = "unexpected portal response status"
	ErrMalformedResponse  PortalError = "malformed portal response"
	ErrOfflineSession     PortalError = "session is not logged in to the portal"
	ErrNilConfig          PortalError = "config cannot be nil"
	ErrEmptyBaseURL       PortalError = "base URL cannot be empty"
	ErrNilLocation        PortalError = "location cannot be nil"
)
