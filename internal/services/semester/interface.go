package semester

import (
	"context"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// Resolver maps a recurring key to every occurrence of it in the semester
//
//go:generate mockgen -package=mocks -destination=mocks/mock_resolver.go github.com/KirkDiggler/sportbot/internal/services/semester Resolver
type Resolver interface {
	// Resolve returns the occurrences of key ordered by start time. A key
	// unknown even after a rebuild yields an empty slice.
	Resolve(ctx context.Context, key models.RecurringKey) ([]models.TrainingRef, error)

	// Rebuild re-reads the whole semester and replaces the index
	Rebuild(ctx context.Context) (*RebuildOutput, error)
}
