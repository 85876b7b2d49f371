package credentials

import (
	"context"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// Repository defines the interface for persisted portal credentials
//
//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sportbot/internal/repositories/credentials Repository
type Repository interface {
	// Save stores the credential record of a user, replacing any previous one
	Save(ctx context.Context, input *SaveInput) error

	// Get retrieves the credential record of a user
	Get(ctx context.Context, input *GetInput) (*models.Credentials, error)

	// Delete removes the credential record of a user
	Delete(ctx context.Context, input *DeleteInput) error

	// ListUserIDs returns every user with stored credentials
	ListUserIDs(ctx context.Context) ([]string, error)
}
