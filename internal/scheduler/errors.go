package scheduler

// SchedulerError is a custom error type for scheduler failures
type SchedulerError string

// Error implements the error interface
func (e SchedulerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig       SchedulerError = "config cannot be nil"
	ErrEmptyJobName    SchedulerError = "job name cannot be empty"
	ErrInvalidInterval SchedulerError = "job interval must be positive"
	ErrNilRun          SchedulerError = "job run function cannot be nil"
	ErrDuplicateJob    SchedulerError = "job already registered"
	ErrAlreadyStarted  SchedulerError = "scheduler already started"
)
