package portal

import (
	"net/http"
	"time"
)

// Config holds configuration for the portal client
type Config struct {
	// BaseURL of the portal, without trailing slash
	BaseURL string

	// Location is the portal timezone used for calendar queries
	Location *time.Location

	// Timeout bounds every single HTTP request
	Timeout time.Duration

	// Transport is optional and mostly useful in tests
	Transport http.RoundTripper
}

// calendarEntry is one element of /api/calendar/trainings
type calendarEntry struct {
	Title         string `json:"title"`
	Start         string `json:"start"`
	End           string `json:"end"`
	ExtendedProps struct {
		ID         int64 `json:"id"`
		GroupID    int64 `json:"group_id"`
		CanCheckIn bool  `json:"can_check_in"`
		CheckedIn  bool  `json:"checked_in"`
	} `json:"extendedProps"`
}

// trainingDetail is the body of /api/training/{id}
type trainingDetail struct {
	// Detail is set instead of Training when the portal reports an error
	Detail   *string `json:"detail"`
	Training *struct {
		ID    int64  `json:"id"`
		Start string `json:"start"`
		End   string `json:"end"`
		Load  int    `json:"load"`
		Group struct {
			ID       int64  `json:"id"`
			Name     string `json:"name"`
			Capacity int    `json:"capacity"`
		} `json:"group"`
	} `json:"training"`
	CanCheckIn bool `json:"can_check_in"`
	CheckedIn  bool `json:"checked_in"`
}

// negativeHours is the body of /api/attendance/{student}/negative_hours
type negativeHours struct {
	FinalHours float64 `json:"final_hours"`
}
