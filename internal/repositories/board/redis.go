package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	boardKeyPrefix = "board:"

	// DefaultTTL is how long an untouched board session lives
	DefaultTTL = 12 * time.Hour
)

// Config holds configuration for the Redis board repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL is refreshed on every save; zero means DefaultTTL
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed board repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

func boardKey(channelID string) string {
	return fmt.Sprintf("%s%s", boardKeyPrefix, channelID)
}

// SaveBoard persists a board to Redis for the session TTL
func (r *redisRepository) SaveBoard(ctx context.Context, input *SaveBoardInput) error {
	if err := input.validate(); err != nil {
		return err
	}

	// Marshal the board to JSON
	boardJSON, err := json.Marshal(input.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}

	if err := r.client.Set(ctx, boardKey(input.Board.ChannelID), boardJSON, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	return nil
}

// GetBoardByChannel retrieves a board by channel ID from Redis
func (r *redisRepository) GetBoardByChannel(ctx context.Context, input *GetBoardByChannelInput) (*models.Board, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	boardJSON, err := r.client.Get(ctx, boardKey(input.ChannelID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	var board models.Board
	if err := json.Unmarshal([]byte(boardJSON), &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return &board, nil
}

// DeleteBoard removes a board from Redis
func (r *redisRepository) DeleteBoard(ctx context.Context, input *DeleteBoardInput) error {
	if input == nil || input.ChannelID == "" {
		return errors.New("input and channel ID cannot be empty")
	}

	deleted, err := r.client.Del(ctx, boardKey(input.ChannelID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if deleted == 0 {
		return ErrBoardNotFound
	}

	return nil
}
