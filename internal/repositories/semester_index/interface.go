package semester_index

import (
	"context"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// Repository persists the semester index: recurring key -> every occurrence
// of that slot in the semester. It is a rebuildable cache.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sportbot/internal/repositories/semester_index Repository
type Repository interface {
	// Get returns the occurrences of one key, or ErrKeyNotFound
	Get(ctx context.Context, input *GetInput) ([]models.TrainingRef, error)

	// Replace swaps the whole index in one step
	Replace(ctx context.Context, input *ReplaceInput) error
}
