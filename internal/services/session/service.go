package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/metrics"
	"github.com/KirkDiggler/sportbot/internal/models"
	"github.com/KirkDiggler/sportbot/internal/portal"
	credentialsRepo "github.com/KirkDiggler/sportbot/internal/repositories/credentials"
)

// registry implements the Registry interface with an in-memory map.
// Portal and store calls are never made while mu is held.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session

	// serviceMu serializes re-login of the service account
	serviceMu sync.Mutex

	portalClient    portal.Client
	credentialsRepo credentialsRepo.Repository
	service         ServiceAccount
	log             logger.Logger
}

// New creates a new session registry
func New(cfg *Config) (*registry, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.PortalClient == nil {
		return nil, ErrNilPortalClient
	}

	if cfg.CredentialsRepo == nil {
		return nil, ErrNilCredentialsRepo
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &registry{
		sessions:        make(map[string]*models.Session),
		portalClient:    cfg.PortalClient,
		credentialsRepo: cfg.CredentialsRepo,
		service:         cfg.ServiceAccount,
		log:             log.WithFields(map[string]interface{}{"component": "session_registry"}),
	}, nil
}

// EnsureUsable reports whether the user's session can be used right now
func (r *registry) EnsureUsable(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	// The service account heals itself instead of waiting for a human
	if r.isServiceAccount(userID) {
		_, err := r.ServiceSession(ctx)
		return err == nil
	}

	current := r.Get(userID)
	if current == nil {
		current = r.rehydrate(ctx, userID)
		if current == nil {
			return false
		}
	}

	// Offline sessions only browse, there is nothing to validate
	if current.IsOffline() {
		metrics.SessionProbes.WithLabelValues("offline").Inc()
		return true
	}

	return r.probe(ctx, current)
}

// Get returns the cached session of a user
func (r *registry) Get(userID string) *models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[userID]
}

// Has reports whether a session is cached for a user
func (r *registry) Has(userID string) bool {
	return r.Get(userID) != nil
}

// Set replaces the cached session of a user
func (r *registry) Set(userID string, s *models.Session) {
	if s == nil {
		r.Clear(userID)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[userID] = s
}

// Clear drops the cached session of a user
func (r *registry) Clear(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
}

// ServiceSession returns a usable session of the service account
func (r *registry) ServiceSession(ctx context.Context) (*models.Session, error) {
	if r.service.UserID == "" || r.service.Email == "" {
		return nil, ErrNoServiceAccount
	}

	r.serviceMu.Lock()
	defer r.serviceMu.Unlock()

	if current := r.Get(r.service.UserID); current != nil && !current.IsOffline() {
		if r.probe(ctx, current) {
			return current, nil
		}
		r.log.Info("Service session expired, logging in again", nil)
	}

	fresh, err := r.portalClient.Login(ctx, r.service.Email, r.service.Password)
	if err != nil {
		r.log.Error("Service account login failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	fresh.UserID = r.service.UserID
	r.Set(r.service.UserID, fresh)

	return fresh, nil
}

// Login authenticates a user against the portal and stores the session
func (r *registry) Login(ctx context.Context, userID, email, password string) (*models.Session, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	fresh, err := r.portalClient.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	fresh.UserID = userID

	// Persist first so a restart right after login still knows the user
	err = r.credentialsRepo.Save(ctx, &credentialsRepo.SaveInput{
		Credentials: models.CredentialsFromSession(fresh),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}

	r.Set(userID, fresh)

	return fresh, nil
}

// Logout forgets a user's session and stored credentials
func (r *registry) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	r.Clear(userID)

	if err := r.credentialsRepo.Delete(ctx, &credentialsRepo.DeleteInput{UserID: userID}); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}

func (r *registry) isServiceAccount(userID string) bool {
	return r.service.UserID != "" && r.service.Email != "" && userID == r.service.UserID
}

// rehydrate loads a session from stored credentials. A concurrent login wins
// over the stored record.
func (r *registry) rehydrate(ctx context.Context, userID string) *models.Session {
	creds, err := r.credentialsRepo.Get(ctx, &credentialsRepo.GetInput{UserID: userID})
	if err != nil {
		if !errors.Is(err, credentialsRepo.ErrCredentialsNotFound) {
			r.log.Warn("Failed to load stored credentials", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return nil
	}

	loaded := creds.ToSession()
	loaded.UserID = userID

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[userID]; ok {
		return existing
	}
	r.sessions[userID] = loaded

	return loaded
}

// probe asks the portal whether the session still works. Errors count as
// unusable and are not retried here.
func (r *registry) probe(ctx context.Context, s *models.Session) bool {
	valid, err := r.portalClient.ProbeValid(ctx, s)
	if err != nil {
		metrics.SessionProbes.WithLabelValues("error").Inc()
		r.log.Warn("Session probe failed", map[string]interface{}{
			"user_id": s.UserID,
			"error":   err.Error(),
		})
		return false
	}

	if !valid {
		metrics.SessionProbes.WithLabelValues("expired").Inc()
		return false
	}

	metrics.SessionProbes.WithLabelValues("valid").Inc()
	return true
}
