package semester_index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sportbot/internal/models"
)

const (
	indexKey    = "semester_index"
	buildingKey = "semester_index:building"
)

// ErrKeyNotFound is returned when the index has no entry for a key
var ErrKeyNotFound = errors.New("recurring key not in semester index")

// Config holds configuration for the Redis semester index repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using one Redis hash
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed semester index repository
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Get returns the occurrences of one key
func (r *redisRepository) Get(ctx context.Context, input *GetInput) ([]models.TrainingRef, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	raw, err := r.client.HGet(ctx, indexKey, input.Key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read semester index: %w", err)
	}

	var refs []models.TrainingRef
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal semester index entry: %w", err)
	}

	return refs, nil
}

// Replace writes the new index under a scratch key and renames it over the
// live one, so readers never observe a half-built index
func (r *redisRepository) Replace(ctx context.Context, input *ReplaceInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if len(input.Index) == 0 {
		if err := r.client.Del(ctx, indexKey).Err(); err != nil {
			return fmt.Errorf("failed to clear semester index: %w", err)
		}
		return nil
	}

	values := make(map[string]interface{}, len(input.Index))
	for key, refs := range input.Index {
		refsJSON, err := json.Marshal(refs)
		if err != nil {
			return fmt.Errorf("failed to marshal semester index entry: %w", err)
		}
		values[key.String()] = refsJSON
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, buildingKey)
	pipe.HSet(ctx, buildingKey, values)
	pipe.Rename(ctx, buildingKey, indexKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace semester index: %w", err)
	}

	return nil
}
