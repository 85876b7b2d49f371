package notification

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	notificationKeyPrefix = "notification:"
	trainingsKey          = "notification_trainings"

	// maxTxRetries bounds optimistic transaction retries
	maxTxRetries = 5
)

// Config holds configuration for the Redis notification repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed notification repository
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

func subscribersKey(trainingID int64) string {
	return notificationKeyPrefix + strconv.FormatInt(trainingID, 10)
}

// AddUser subscribes a user to a training
func (r *redisRepository) AddUser(ctx context.Context, input *AddUserInput) error {
	if input == nil || input.UserID == "" || input.TrainingID == 0 {
		return errors.New("input, user ID and training ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, subscribersKey(input.TrainingID), input.UserID)
	pipe.SAdd(ctx, trainingsKey, input.TrainingID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add subscription: %w", err)
	}

	return nil
}

// RemoveUser unsubscribes a user and drops the training from the index
// once nobody is left
func (r *redisRepository) RemoveUser(ctx context.Context, input *RemoveUserInput) error {
	if input == nil || input.UserID == "" || input.TrainingID == 0 {
		return errors.New("input, user ID and training ID cannot be empty")
	}

	key := subscribersKey(input.TrainingID)
	txf := func(tx *redis.Tx) error {
		members, err := tx.SMembers(ctx, key).Result()
		if err != nil {
			return err
		}

		remaining := 0
		for _, m := range members {
			if m != input.UserID {
				remaining++
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SRem(ctx, key, input.UserID)
			if remaining == 0 {
				pipe.SRem(ctx, trainingsKey, input.TrainingID)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("failed to remove subscription: %w", err)
	}

	return fmt.Errorf("failed to remove subscription: %w", redis.TxFailedErr)
}

// HasUser reports whether a user is subscribed to a training
func (r *redisRepository) HasUser(ctx context.Context, input *HasUserInput) (bool, error) {
	if input == nil || input.UserID == "" || input.TrainingID == 0 {
		return false, errors.New("input, user ID and training ID cannot be empty")
	}

	ok, err := r.client.SIsMember(ctx, subscribersKey(input.TrainingID), input.UserID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}

	return ok, nil
}

// GetUsers returns the subscribers of a training, sorted
func (r *redisRepository) GetUsers(ctx context.Context, input *GetUsersInput) ([]string, error) {
	if input == nil || input.TrainingID == 0 {
		return nil, errors.New("input and training ID cannot be empty")
	}

	users, err := r.client.SMembers(ctx, subscribersKey(input.TrainingID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}

	sort.Strings(users)
	return users, nil
}

// ListTrainingIDs returns every training with outstanding subscriptions, sorted
func (r *redisRepository) ListTrainingIDs(ctx context.Context) ([]int64, error) {
	members, err := r.client.SMembers(ctx, trainingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt training id %q: %w", m, err)
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Delete drops every subscription of a training
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil || input.TrainingID == 0 {
		return errors.New("input and training ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, subscribersKey(input.TrainingID))
	pipe.SRem(ctx, trainingsKey, input.TrainingID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete subscriptions: %w", err)
	}

	return nil
}
