package session

import (
	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/portal"
	credentialsRepo "github.com/KirkDiggler/sportbot/internal/repositories/credentials"
)

// ServiceAccount identifies the privileged account used by the reconcilers
type ServiceAccount struct {
	UserID   string
	Email    string
	Password string
}

// Config holds the dependencies of the session registry
type Config struct {
	PortalClient    portal.Client
	CredentialsRepo credentialsRepo.Repository
	ServiceAccount  ServiceAccount
	Logger          logger.Logger
}
