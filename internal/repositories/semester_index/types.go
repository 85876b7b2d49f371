package semester_index

import (
	"github.com/KirkDiggler/sportbot/internal/models"
)

// GetInput contains parameters for reading one key
type GetInput struct {
	Key models.RecurringKey
}

// ReplaceInput contains the freshly built index
type ReplaceInput struct {
	Index map[models.RecurringKey][]models.TrainingRef
}
