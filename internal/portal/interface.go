package portal

import (
	"context"
	"time"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// Client is the sports portal API as seen by the bot. Calls are not retried;
// callers decide what a failure means for them.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/KirkDiggler/sportbot/internal/portal Client
type Client interface {
	// Ping fails with ErrServerUnavailable when the portal is down
	Ping(ctx context.Context) error

	// Login runs the portal sign-in flow and returns a fresh session
	Login(ctx context.Context, email, password string) (*models.Session, error)

	// ProbeValid reports whether the session is still accepted by the portal
	ProbeValid(ctx context.Context, session *models.Session) (bool, error)

	// FetchDay returns the trainings of one calendar day
	FetchDay(ctx context.Context, session *models.Session, day time.Time) ([]*models.TrainingSlot, error)

	// FetchRange returns the trainings between two calendar days, inclusive
	FetchRange(ctx context.Context, session *models.Session, from, to time.Time) ([]*models.TrainingSlot, error)

	// FetchDetail returns live capacity and eligibility for one training.
	// ErrTrainingNotFound means the training or its group no longer exists.
	FetchDetail(ctx context.Context, session *models.Session, trainingID int64) (*models.TrainingSlot, error)

	// CheckIn books a seat for the session owner
	CheckIn(ctx context.Context, session *models.Session, trainingID int64) error

	// CancelCheckIn releases a booked seat
	CancelCheckIn(ctx context.Context, session *models.Session, trainingID int64) error

	// FetchStatistics returns the attendance summary of the session owner
	FetchStatistics(ctx context.Context, session *models.Session) (*models.Statistics, error)

	// FetchSemester returns the first and last day of the current semester
	FetchSemester(ctx context.Context, session *models.Session) (from, to time.Time, err error)
}
