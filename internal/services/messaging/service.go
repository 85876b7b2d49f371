package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	dayLayout  = "02/01/2006"
	timeLayout = "15:04"
)

// service implements the Service interface
type service struct {
	location *time.Location

	// Random number generator for selecting phrasings
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (*service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	loc := config.Location
	if loc == nil {
		loc = time.UTC
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &service{
		location: loc,
		rand:     rand.New(rand.NewSource(seed)),
	}, nil
}

// GetSeatAvailableMessage returns the alert sent when a full training frees a seat
func (s *service) GetSeatAvailableMessage(ctx context.Context, input *GetSeatAvailableMessageInput) (*GetSeatAvailableMessageOutput, error) {
	if input == nil || input.Slot == nil {
		return nil, errors.New("slot cannot be nil")
	}

	start := input.Slot.Start.In(s.location)
	text := fmt.Sprintf("There is %s for %s at %s on %s (%s)! Check in ASAP!",
		seatPhrase(input.Slot.FreeSeats()),
		input.Slot.GroupName,
		start.Format(timeLayout),
		start.Weekday(),
		start.Format(dayLayout),
	)

	if others := input.Recipients - 1; others > 0 {
		text += fmt.Sprintf("\nThis message has been sent to %d more %s.", others, plural(others, "person", "people"))
	}

	return &GetSeatAvailableMessageOutput{
		Title:   "Seat available",
		Message: text,
	}, nil
}

// GetExpiredMessage returns the notice sent when a training ended with no seat
func (s *service) GetExpiredMessage(ctx context.Context, input *GetExpiredMessageInput) (*GetExpiredMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var text string
	if input.Slot != nil {
		start := input.Slot.Start.In(s.location)
		text = fmt.Sprintf("No seat opened up for %s on %s (%s) before it ended. Your notification has been removed.",
			input.Slot.GroupName,
			start.Weekday(),
			start.Format(dayLayout),
		)
	} else {
		text = fmt.Sprintf("Training #%d is no longer on the schedule. Your notification has been removed.", input.TrainingID)
	}

	return &GetExpiredMessageOutput{
		Title:   "Notification expired",
		Message: text,
	}, nil
}

// GetCheckedInMessage returns a check-in confirmation
func (s *service) GetCheckedInMessage(ctx context.Context, input *GetCheckedInMessageInput) (*GetCheckedInMessageOutput, error) {
	if input == nil || input.Slot == nil {
		return nil, errors.New("slot cannot be nil")
	}

	start := input.Slot.Start.In(s.location)
	when := fmt.Sprintf("%s on %s (%s)", start.Format(timeLayout), start.Weekday(), start.Format(dayLayout))

	var text string
	if input.Automatic {
		text = s.pick(
			fmt.Sprintf("I checked you in to %s at %s.", input.Slot.GroupName, when),
			fmt.Sprintf("Auto check-in done: %s at %s.", input.Slot.GroupName, when),
			fmt.Sprintf("You're booked for %s at %s. See you there!", input.Slot.GroupName, when),
		)
	} else {
		text = fmt.Sprintf("You are checked in to %s at %s.", input.Slot.GroupName, when)
	}

	return &GetCheckedInMessageOutput{
		Title:   "Checked in",
		Message: text,
	}, nil
}

// GetSlotVanishedMessage returns the notice sent when a recurring slot disappears
func (s *service) GetSlotVanishedMessage(ctx context.Context, input *GetSlotVanishedMessageInput) (*GetSlotVanishedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetSlotVanishedMessageOutput{
		Title: "Recurring slot removed",
		Message: fmt.Sprintf("Your automatic check-in for %s was removed because the training is no longer on the schedule.",
			input.Key.Describe()),
	}, nil
}

// GetReloginMessage returns the prompt sent when a session expired
func (s *service) GetReloginMessage(ctx context.Context) (*GetReloginMessageOutput, error) {
	return &GetReloginMessageOutput{
		Title:   "Session expired",
		Message: "Your session expired, so automatic check-ins are paused. Please log in again with /sport login.",
	}, nil
}

// GetWelcomeMessage returns the greeting shown before login
func (s *service) GetWelcomeMessage(ctx context.Context, input *GetWelcomeMessageInput) (*GetWelcomeMessageOutput, error) {
	if input != nil && input.Registered {
		return &GetWelcomeMessageOutput{
			Title:   "Logged in",
			Message: "You logged in successfully!",
		}, nil
	}

	return &GetWelcomeMessageOutput{
		Title: "Hello!",
		Message: "I am the sport attendance bot. I can show the schedule, check you in, " +
			"tell you when a seat frees up and check you in every week. " +
			"Let's get started: log in with /sport login and your university email.",
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := "Something went wrong"
	var text string

	// Select message based on error type
	switch input.ErrorType {
	case ErrorTypeInvalidCredentials:
		title = "Login failed"
		text = "Wrong email or password. Please check them and try again."
	case ErrorTypeAuthServerDown:
		title = "Login failed"
		text = "The authentication server is down, please try again later."
	case ErrorTypePortalDown:
		title = "Portal unavailable"
		text = "Sorry, the sport site is not available at the moment. This bot cannot work without it. Come again later."
	case ErrorTypeNotRegistered:
		title = "Not logged in"
		text = "I don't know you yet. Log in with /sport login first."
	case ErrorTypeSessionExpired:
		title = "Session expired"
		text = "Your session expired, please log in again with /sport login."
	case ErrorTypeOfflineSession:
		title = "Read-only session"
		text = "You are browsing without a portal login, so I can't check you in. Log in with /sport login."
	case ErrorTypeNoSeats:
		title = "No free seats"
		text = "Free seats for this training are over, but you can turn on notifications to hear when one appears."
	case ErrorTypeCheckInClosed:
		title = "Check-in closed"
		text = "Check-in for this training is not open right now. It opens a week before the training starts."
	case ErrorTypeTrainingNotFound:
		title = "Training not found"
		text = "This training is no longer on the schedule."
	case ErrorTypeNoMatchingSlots:
		title = "Nothing to subscribe to"
		text = "I couldn't find any upcoming trainings for this slot this semester, so no automatic check-in was set up."
	case ErrorTypeNotAdmin:
		title = "Not allowed"
		text = "Only the bot administrator can do that."
	case ErrorTypeInvalidInput:
		title = "Invalid input"
		text = "I couldn't understand that. Please check the command and try again."
	default:
		text = s.pick(
			"Some error occurred, please try again later.",
			"Something went wrong on my side. Please try again in a minute.",
		)
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: text,
	}, nil
}

// GetBroadcastSummaryMessage returns the delivery report of a broadcast
func (s *service) GetBroadcastSummaryMessage(ctx context.Context, input *GetBroadcastSummaryMessageInput) (*GetBroadcastSummaryMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetBroadcastSummaryMessageOutput{
		Message: fmt.Sprintf("Amount of users: %d\nFailed attempts: %d", input.Attempted, input.Failed),
	}, nil
}

// GetStatisticsMessage returns the attendance summary of a student
func (s *service) GetStatisticsMessage(ctx context.Context, input *GetStatisticsMessageInput) (*GetStatisticsMessageOutput, error) {
	if input == nil || input.Statistics == nil {
		return nil, errors.New("statistics cannot be nil")
	}

	return &GetStatisticsMessageOutput{
		Title: "Your statistics",
		Message: fmt.Sprintf("Sport hours this semester: %s\nBetter than %s%% of students",
			formatNumber(input.Statistics.Hours),
			formatNumber(input.Statistics.BetterThan)),
	}, nil
}

func (s *service) pick(options ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return options[s.rand.Intn(len(options))]
}

func seatPhrase(free int) string {
	if free <= 1 {
		return "one available place"
	}
	return fmt.Sprintf("%d available places", free)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
