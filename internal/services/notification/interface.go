package notification

import "context"

// Service watches full trainings and tells subscribers when a seat opens
//
//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/sportbot/internal/services/notification Service
type Service interface {
	// Reconcile re-checks every training with subscribers
	Reconcile(ctx context.Context) (*ReconcileOutput, error)

	// Toggle subscribes or unsubscribes a user from a training
	Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error)
}
