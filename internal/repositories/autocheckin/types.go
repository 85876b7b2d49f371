package autocheckin

import (
	"github.com/KirkDiggler/sportbot/internal/models"
)

// SetKeyInput contains parameters for replacing a key's occurrences
type SetKeyInput struct {
	UserID string
	Key    models.RecurringKey

	// Refs must be ordered by start time
	Refs []models.TrainingRef
}

// GetKeyInput contains parameters for reading one key
type GetKeyInput struct {
	UserID string
	Key    models.RecurringKey
}

// GetKeysInput contains parameters for reading every key of a user
type GetKeysInput struct {
	UserID string
}

// GetKeysOutput contains the recurring subscriptions of a user
type GetKeysOutput struct {
	Subscriptions map[models.RecurringKey][]models.TrainingRef
}

// DeleteKeyInput contains parameters for dropping a key
type DeleteKeyInput struct {
	UserID string
	Key    models.RecurringKey
}

// RemoveTrainingInput contains parameters for consuming one occurrence
type RemoveTrainingInput struct {
	UserID     string
	Key        models.RecurringKey
	TrainingID int64
}
