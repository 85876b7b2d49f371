package credentials

import (
	"github.com/KirkDiggler/sportbot/internal/models"
)

// SaveInput contains parameters for saving credentials
type SaveInput struct {
	Credentials *models.Credentials
}

// GetInput contains parameters for fetching credentials
type GetInput struct {
	UserID string
}

// DeleteInput contains parameters for removing credentials
type DeleteInput struct {
	UserID string
}
