package messaging

import "context"

// Service renders every user-facing text of the bot
//
//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/sportbot/internal/services/messaging Service
type Service interface {
	// GetSeatAvailableMessage returns the alert sent when a full training frees a seat
	GetSeatAvailableMessage(ctx context.Context, input *GetSeatAvailableMessageInput) (*GetSeatAvailableMessageOutput, error)

	// GetExpiredMessage returns the notice sent when a training ended with no seat
	GetExpiredMessage(ctx context.Context, input *GetExpiredMessageInput) (*GetExpiredMessageOutput, error)

	// GetCheckedInMessage returns a check-in confirmation
	GetCheckedInMessage(ctx context.Context, input *GetCheckedInMessageInput) (*GetCheckedInMessageOutput, error)

	// GetSlotVanishedMessage returns the notice sent when a recurring slot disappears
	GetSlotVanishedMessage(ctx context.Context, input *GetSlotVanishedMessageInput) (*GetSlotVanishedMessageOutput, error)

	// GetReloginMessage returns the prompt sent when a session expired
	GetReloginMessage(ctx context.Context) (*GetReloginMessageOutput, error)

	// GetWelcomeMessage returns the greeting shown before login
	GetWelcomeMessage(ctx context.Context, input *GetWelcomeMessageInput) (*GetWelcomeMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)

	// GetBroadcastSummaryMessage returns the delivery report of a broadcast
	GetBroadcastSummaryMessage(ctx context.Context, input *GetBroadcastSummaryMessageInput) (*GetBroadcastSummaryMessageOutput, error)

	// GetStatisticsMessage returns the attendance summary of a student
	GetStatisticsMessage(ctx context.Context, input *GetStatisticsMessageInput) (*GetStatisticsMessageOutput, error)
}
