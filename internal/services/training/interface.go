package training

import (
	"context"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// Service backs the interactive chat commands
//
//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/sportbot/internal/services/training Service
type Service interface {
	// GetDay returns one day's schedule as seen by the user
	GetDay(ctx context.Context, input *GetDayInput) (*GetDayOutput, error)

	// GetDetail returns the live state of one training
	GetDetail(ctx context.Context, input *GetDetailInput) (*GetDetailOutput, error)

	// ToggleCheckIn checks in, or cancels an existing check-in
	ToggleCheckIn(ctx context.Context, input *ToggleCheckInInput) (*ToggleCheckInOutput, error)

	// GetMyWeek returns the trainings the user is checked in to
	GetMyWeek(ctx context.Context, input *GetMyWeekInput) (*GetMyWeekOutput, error)

	// GetStatistics returns the user's sport hours
	GetStatistics(ctx context.Context, input *GetStatisticsInput) (*models.Statistics, error)

	// PrepareBroadcast holds a message for every registered user until the
	// sender confirms it
	PrepareBroadcast(ctx context.Context, input *PrepareBroadcastInput) (*PrepareBroadcastOutput, error)

	// ConfirmBroadcast sends or discards the sender's held message
	ConfirmBroadcast(ctx context.Context, input *ConfirmBroadcastInput) (*BroadcastOutput, error)
}
