package semester

// SemesterError is a custom error type for semester index failures
type SemesterError string

// Error implements the error interface
func (e SemesterError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig       SemesterError = "config cannot be nil"
	ErrNilPortalClient SemesterError = "portal client cannot be nil"
	ErrNilRegistry     SemesterError = "session registry cannot be nil"
	ErrNilIndexRepo    SemesterError = "semester index repository cannot be nil"
	ErrNilLocation     SemesterError = "location cannot be nil"
	ErrNoBounds        SemesterError = "semester bounds are unknown"
)
