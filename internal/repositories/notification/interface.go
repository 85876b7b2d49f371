package notification

import (
	"context"
)

// Repository stores "notify me when a seat opens" subscriptions, keyed by training
//
//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sportbot/internal/repositories/notification Repository
type Repository interface {
	// AddUser subscribes a user to a training. Adding twice is a no-op.
	AddUser(ctx context.Context, input *AddUserInput) error

	// RemoveUser unsubscribes a user from a training
	RemoveUser(ctx context.Context, input *RemoveUserInput) error

	// HasUser reports whether a user is subscribed to a training
	HasUser(ctx context.Context, input *HasUserInput) (bool, error)

	// GetUsers returns the subscribers of a training
	GetUsers(ctx context.Context, input *GetUsersInput) ([]string, error)

	// ListTrainingIDs returns every training with at least one subscriber
	ListTrainingIDs(ctx context.Context) ([]int64, error)

	// Delete drops every subscription of a training
	Delete(ctx context.Context, input *DeleteInput) error
}
