package autocheckin

import "context"

// Service checks users in to their weekly trainings
//
//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/sportbot/internal/services/autocheckin Service
type Service interface {
	// Reconcile walks every user's recurring subscriptions once
	Reconcile(ctx context.Context) (*ReconcileOutput, error)

	// Subscribe resolves a recurring slot and stores its upcoming occurrences
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// SubscribeTraining subscribes to the recurring slot a training belongs to
	SubscribeTraining(ctx context.Context, input *SubscribeTrainingInput) (*SubscribeOutput, error)

	// Unsubscribe drops a recurring subscription
	Unsubscribe(ctx context.Context, input *UnsubscribeInput) error

	// List returns a user's recurring subscriptions
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Consume drops one occurrence. Consuming twice is a no-op.
	Consume(ctx context.Context, input *ConsumeInput) error
}
