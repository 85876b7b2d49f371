package autocheckin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sportbot/internal/models"
)

const (
	// Key prefixes for Redis
	subscriptionsKeyPrefix = "autocheckin:"
	usersKey               = "autocheckin_users"
	coveredKeyPrefix       = "autocheckin_covered:"

	// maxTxRetries bounds optimistic transaction retries
	maxTxRetries = 5
)

// ErrKeyNotFound is returned when a user has no subscription for a key
var ErrKeyNotFound = errors.New("recurring subscription not found")

// Config holds configuration for the Redis auto check-in repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis.
// Each user owns one hash: field = recurring key, value = JSON refs, and a
// second hash holding the start (unix nanos) of the latest consumed ref per key.
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed auto check-in repository
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

func userKey(userID string) string {
	return subscriptionsKeyPrefix + userID
}

func coveredKey(userID string) string {
	return coveredKeyPrefix + userID
}

// SetKey replaces the occurrence list of one recurring key
func (r *redisRepository) SetKey(ctx context.Context, input *SetKeyInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	refs := input.Refs
	if refs == nil {
		refs = []models.TrainingRef{}
	}
	refsJSON, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("failed to marshal occurrences: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, userKey(input.UserID), input.Key.String(), refsJSON)
	pipe.SAdd(ctx, usersKey, input.UserID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	return nil
}

// GetKey returns the occurrence list of one recurring key
func (r *redisRepository) GetKey(ctx context.Context, input *GetKeyInput) ([]models.TrainingRef, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	raw, err := r.client.HGet(ctx, userKey(input.UserID), input.Key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return decodeRefs(raw)
}

// GetKeys returns every recurring key of a user
func (r *redisRepository) GetKeys(ctx context.Context, input *GetKeysInput) (*GetKeysOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, userKey(input.UserID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	subs := make(map[models.RecurringKey][]models.TrainingRef, len(fields))
	for field, value := range fields {
		key, err := models.ParseRecurringKey(field)
		if err != nil {
			return nil, fmt.Errorf("corrupt subscription key: %w", err)
		}

		refs, err := decodeRefs([]byte(value))
		if err != nil {
			return nil, err
		}
		subs[key] = refs
	}

	return &GetKeysOutput{
		Subscriptions: subs,
	}, nil
}

// DeleteKey drops a key and unindexes the user when nothing is left
func (r *redisRepository) DeleteKey(ctx context.Context, input *DeleteKeyInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	hash := userKey(input.UserID)
	field := input.Key.String()
	txf := func(tx *redis.Tx) error {
		fields, err := tx.HKeys(ctx, hash).Result()
		if err != nil {
			return err
		}

		remaining := 0
		for _, f := range fields {
			if f != field {
				remaining++
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, hash, field)
			pipe.HDel(ctx, coveredKey(input.UserID), field)
			if remaining == 0 {
				pipe.SRem(ctx, usersKey, input.UserID)
			}
			return nil
		})
		return err
	}

	if err := r.watch(ctx, txf, hash); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}

// RemoveTraining drops one occurrence from a key under WATCH so that the
// reconciler and a manual check-in can both consume the same entry safely
func (r *redisRepository) RemoveTraining(ctx context.Context, input *RemoveTrainingInput) (bool, error) {
	if input == nil || input.UserID == "" || input.TrainingID == 0 {
		return false, errors.New("input, user ID and training ID cannot be empty")
	}

	hash := userKey(input.UserID)
	field := input.Key.String()
	removed := false

	txf := func(tx *redis.Tx) error {
		removed = false

		raw, err := tx.HGet(ctx, hash, field).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return err
		}

		refs, err := decodeRefs(raw)
		if err != nil {
			return err
		}

		var consumed models.TrainingRef
		kept := make([]models.TrainingRef, 0, len(refs))
		for _, ref := range refs {
			if ref.ID == input.TrainingID {
				removed = true
				consumed = ref
				continue
			}
			kept = append(kept, ref)
		}
		if !removed {
			return nil
		}

		keptJSON, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("failed to marshal occurrences: %w", err)
		}

		covered, err := readCovered(ctx, tx, input.UserID, field)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, hash, field, keptJSON)
			if consumed.Start.After(covered) {
				pipe.HSet(ctx, coveredKey(input.UserID), field, consumed.Start.UnixNano())
			}
			return nil
		})
		return err
	}

	if err := r.watch(ctx, txf, hash, coveredKey(input.UserID)); err != nil {
		return false, fmt.Errorf("failed to remove occurrence: %w", err)
	}

	return removed, nil
}

// CoveredUntil returns the start of the latest occurrence consumed from a key
func (r *redisRepository) CoveredUntil(ctx context.Context, input *GetKeyInput) (time.Time, error) {
	if input == nil || input.UserID == "" {
		return time.Time{}, errors.New("input and user ID cannot be empty")
	}

	covered, err := readCovered(ctx, r.client, input.UserID, input.Key.String())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get covered occurrences: %w", err)
	}

	return covered, nil
}

// ListUserIDs returns every subscribed user, sorted
func (r *redisRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

func (r *redisRepository) watch(ctx context.Context, txf func(*redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}

func readCovered(ctx context.Context, client redis.Cmdable, userID, field string) (time.Time, error) {
	nanos, err := client.HGet(ctx, coveredKey(userID), field).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Unix(0, nanos), nil
}

func decodeRefs(raw []byte) ([]models.TrainingRef, error) {
	var refs []models.TrainingRef
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal occurrences: %w", err)
	}
	if refs == nil {
		refs = []models.TrainingRef{}
	}
	return refs, nil
}
