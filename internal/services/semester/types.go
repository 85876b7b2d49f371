package semester

import (
	"time"

	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/portal"
	semesterRepo "github.com/KirkDiggler/sportbot/internal/repositories/semester_index"
	"github.com/KirkDiggler/sportbot/internal/services/session"
)

// Config holds the dependencies of the semester index
type Config struct {
	PortalClient portal.Client
	Registry     session.Registry
	IndexRepo    semesterRepo.Repository

	// Location is the portal timezone recurring keys are derived in
	Location *time.Location

	// From and To pin the semester range. When zero the range is read
	// from the portal profile page.
	From time.Time
	To   time.Time

	Logger logger.Logger
}

// RebuildOutput reports what a rebuild indexed
type RebuildOutput struct {
	From      time.Time
	To        time.Time
	Trainings int
	Keys      int
}
