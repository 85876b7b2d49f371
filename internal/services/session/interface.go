package session

import (
	"context"

	"github.com/KirkDiggler/sportbot/internal/models"
)

// Registry caches one portal session per user and decides whether it can be
// used. It is shared by the reconcilers and the chat handlers.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_registry.go github.com/KirkDiggler/sportbot/internal/services/session Registry
type Registry interface {
	// EnsureUsable reports whether the user has a session that can be used
	// right now, rehydrating it from stored credentials when needed
	EnsureUsable(ctx context.Context, userID string) bool

	// Get returns the cached session, or nil
	Get(userID string) *models.Session

	// Has reports whether a session is cached for the user
	Has(userID string) bool

	// Set replaces the cached session of a user
	Set(userID string, s *models.Session)

	// Clear drops the cached session of a user
	Clear(userID string)

	// ServiceSession returns a usable session of the service account,
	// logging in again when the cached one has expired
	ServiceSession(ctx context.Context) (*models.Session, error)

	// Login authenticates against the portal, persists the credentials and
	// caches the new session
	Login(ctx context.Context, userID, email, password string) (*models.Session, error)

	// Logout forgets the cached session and the stored credentials
	Logout(ctx context.Context, userID string) error
}
