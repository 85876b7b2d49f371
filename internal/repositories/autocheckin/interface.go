package autocheckin

import (
	"context"
	"time"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// Repository stores recurring check-in subscriptions: per user, per
// recurring key, the ordered upcoming occurrences still to act on.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sportbot/internal/repositories/autocheckin Repository
type Repository interface {
	// SetKey replaces the occurrence list of one recurring key
	SetKey(ctx context.Context, input *SetKeyInput) error

	// GetKey returns the occurrence list of one recurring key
	GetKey(ctx context.Context, input *GetKeyInput) ([]models.TrainingRef, error)

	// GetKeys returns every recurring key of a user
	GetKeys(ctx context.Context, input *GetKeysInput) (*GetKeysOutput, error)

	// DeleteKey drops a recurring key of a user
	DeleteKey(ctx context.Context, input *DeleteKeyInput) error

	// RemoveTraining drops one occurrence from a key. Removing an absent
	// occurrence is a no-op and reports false.
	RemoveTraining(ctx context.Context, input *RemoveTrainingInput) (bool, error)

	// CoveredUntil returns the start of the latest occurrence consumed from a
	// key, or the zero time when none was. Deleting the key resets it.
	CoveredUntil(ctx context.Context, input *GetKeyInput) (time.Time, error)

	// ListUserIDs returns every user with at least one recurring key
	ListUserIDs(ctx context.Context) ([]string, error)
}
