package uuid

import "github.com/google/uuid"

// UUID generates the run ids that correlate the log lines of one
// reconciliation pass
//
//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/sportbot/internal/common/uuid UUID
type UUID interface {
	NewUUID() string
}

// DefaultUUID issues time-ordered (version 7) ids, so run ids sort by the
// time the pass started
type DefaultUUID struct{}

// New creates the default generator
func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new id, falling back to a random one if the time-ordered
// generator fails
func (d *DefaultUUID) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
