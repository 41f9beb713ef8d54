package dal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/utils/logger"

	"github.com/go-redis/redis/v8"
)

// ErrSelectionNotFound is returned when a handoff token is unknown,
// expired, or already consumed.
var ErrSelectionNotFound = errors.New("selection not found")

const selectionKeyPrefix = "selection:"

// RedisSelectionStore keeps the report number a user picked on the list
// page so the edit and print pages can claim it. Entries expire on
// their own and are consumed on first read.
type RedisSelectionStore struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisSelectionStore connects to redis and verifies the connection.
func NewRedisSelectionStore(cfg *models.Config, log logger.Logger) (*RedisSelectionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("✅ Redis selection store initialized successfully")
	return &RedisSelectionStore{client: client, logger: log}, nil
}

// Put stores reportNumber under token for at most ttl.
func (s *RedisSelectionStore) Put(ctx context.Context, token, reportNumber string, ttl time.Duration) error {
	return s.client.Set(ctx, selectionKeyPrefix+token, reportNumber, ttl).Err()
}

// Take returns the report number for token and removes it, so a token
// can be claimed exactly once.
func (s *RedisSelectionStore) Take(ctx context.Context, token string) (string, error) {
	value, err := s.client.GetDel(ctx, selectionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrSelectionNotFound
	}
	if err != nil {
		s.logger.Errorf("Failed to take selection %s: %v", token, err)
		return "", err
	}
	return value, nil
}

// Close releases the redis connection.
func (s *RedisSelectionStore) Close() error {
	return s.client.Close()
}
