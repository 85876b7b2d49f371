package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sportbot/internal/common/sealer"
	"github.com/KirkDiggler/sportbot/internal/models"
)

const (
	// Key prefixes for Redis
	credentialsKeyPrefix = "credentials:"
	usersKey             = "credentials_users"
)

// ErrCredentialsNotFound is returned when a user has no stored credentials
var ErrCredentialsNotFound = errors.New("credentials not found")

// Config holds configuration for the Redis credentials repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Sealer encrypts records at rest. Defaults to pass-through.
	Sealer sealer.Sealer
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	sealer sealer.Sealer
}

// NewRedis creates a new Redis-backed credentials repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s := cfg.Sealer
	if s == nil {
		s = sealer.Noop{}
	}

	return &redisRepository{
		client: cfg.RedisClient,
		sealer: s,
	}, nil
}

// Save persists the credential record and indexes the user
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) error {
	if input == nil || input.Credentials == nil {
		return errors.New("input and credentials cannot be nil")
	}

	creds := input.Credentials
	if creds.UserID == "" {
		return errors.New("user ID cannot be empty")
	}

	credsJSON, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	sealed, err := r.sealer.Seal(credsJSON)
	if err != nil {
		return fmt.Errorf("failed to seal credentials: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, credentialsKeyPrefix+creds.UserID, sealed, 0)
	pipe.SAdd(ctx, usersKey, creds.UserID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Get retrieves the credential record of a user
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.Credentials, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	raw, err := r.client.Get(ctx, credentialsKeyPrefix+input.UserID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}

	opened, err := r.sealer.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials: %w", err)
	}

	var creds models.Credentials
	if err := json.Unmarshal(opened, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}

	return &creds, nil
}

// Delete removes the credential record. Deleting a missing record is a no-op.
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, credentialsKeyPrefix+input.UserID)
	pipe.SRem(ctx, usersKey, input.UserID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}

// ListUserIDs returns every registered user, sorted
func (r *redisRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}
