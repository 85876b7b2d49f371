package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/sportbot/internal/portal"
	"github.com/KirkDiggler/sportbot/internal/services/autocheckin"
	"github.com/KirkDiggler/sportbot/internal/services/messaging"
	"github.com/KirkDiggler/sportbot/internal/services/notification"
	"github.com/KirkDiggler/sportbot/internal/services/session"
	"github.com/KirkDiggler/sportbot/internal/services/training"
)

// HandlerError is a custom error type for chat handler failures
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        HandlerError = "config cannot be nil"
	ErrEmptyToken       HandlerError = "token cannot be empty"
	ErrNilService       HandlerError = "service cannot be nil"
	ErrNilLocation      HandlerError = "location cannot be nil"
	ErrNilSender        HandlerError = "message sender cannot be nil"
	ErrInvalidComponent HandlerError = "invalid component id"
	ErrUnknownCommand   HandlerError = "unknown subcommand"
)

// errorTypeFor maps a service error to the message category shown to users
func errorTypeFor(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, portal.ErrInvalidCredentials):
		return messaging.ErrorTypeInvalidCredentials
	case errors.Is(err, portal.ErrAuthServerError):
		return messaging.ErrorTypeAuthServerDown
	case errors.Is(err, portal.ErrServerUnavailable),
		errors.Is(err, portal.ErrUnexpectedStatus),
		errors.Is(err, portal.ErrMalformedResponse),
		errors.Is(err, session.ErrServiceUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return messaging.ErrorTypePortalDown
	case errors.Is(err, portal.ErrTrainingNotFound):
		return messaging.ErrorTypeTrainingNotFound
	case errors.Is(err, portal.ErrOfflineSession):
		return messaging.ErrorTypeOfflineSession
	case errors.Is(err, training.ErrNotRegistered):
		return messaging.ErrorTypeNotRegistered
	case errors.Is(err, training.ErrSessionExpired):
		return messaging.ErrorTypeSessionExpired
	case errors.Is(err, training.ErrNoSeats):
		return messaging.ErrorTypeNoSeats
	case errors.Is(err, training.ErrCheckInClosed):
		return messaging.ErrorTypeCheckInClosed
	case errors.Is(err, training.ErrNotAdmin):
		return messaging.ErrorTypeNotAdmin
	case errors.Is(err, autocheckin.ErrNoMatchingTrainings):
		return messaging.ErrorTypeNoMatchingSlots
	case errors.Is(err, training.ErrInvalidInput),
		errors.Is(err, training.ErrEmptyMessage),
		errors.Is(err, training.ErrNoPendingBroadcast),
		errors.Is(err, autocheckin.ErrInvalidInput),
		errors.Is(err, notification.ErrInvalidInput),
		errors.Is(err, session.ErrEmptyUserID),
		errors.Is(err, ErrInvalidComponent),
		errors.Is(err, ErrUnknownCommand):
		return messaging.ErrorTypeInvalidInput
	default:
		return messaging.ErrorTypeUnexpected
	}
}
