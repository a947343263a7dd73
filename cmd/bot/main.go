package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/ladderbot/internal/common/clock"
	"github.com/KirkDiggler/ladderbot/internal/common/random"
	"github.com/KirkDiggler/ladderbot/internal/common/uuid"
	"github.com/KirkDiggler/ladderbot/internal/handlers/discord"
	"github.com/KirkDiggler/ladderbot/internal/ladder"
	boardRepo "github.com/KirkDiggler/ladderbot/internal/repositories/board"
	boardService "github.com/KirkDiggler/ladderbot/internal/services/board"
	"github.com/KirkDiggler/ladderbot/internal/services/messaging"
)

// Exit codes
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ladderbot terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return exitConfig, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return exitConfig, err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the board repository
	repo, closeRepo, err := newBoardRepository(ctx, cfg, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer closeRepo()

	ladderCfg := ladder.Config{
		MaxStep:         cfg.MaxStep,
		MaxParticipants: cfg.MaxParticipants,
	}

	boardSvc, err := boardService.New(&boardService.Config{
		Ladder:        ladderCfg,
		BoardRepo:     repo,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		Logger:        logger,
	})
	if err != nil {
		return exitConfig, fmt.Errorf("failed to create board service: %w", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Picker:  random.New(nil),
		MaxStep: cfg.MaxStep,
	})
	if err != nil {
		return exitConfig, fmt.Errorf("failed to create messaging service: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:            cfg.DiscordToken,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		BoardService:     boardSvc,
		MessagingService: messagingSvc,
		MaxStep:          cfg.MaxStep,
		Logger:           logger,
	})
	if err != nil {
		return exitConfig, fmt.Errorf("failed to create Discord bot: %w", err)
	}

	if err := bot.Start(); err != nil {
		return exitRuntime, fmt.Errorf("failed to start Discord bot: %w", err)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", "error", err)
	}

	logger.Info("bot has been shut down")
	return exitOK, nil
}

// newBoardRepository picks Redis when REDIS_ADDR is set and the in-memory store otherwise
func newBoardRepository(ctx context.Context, cfg *Config, logger *slog.Logger) (boardRepo.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory board store")
		return boardRepo.NewMemory(), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	repo, err := boardRepo.NewRedis(&boardRepo.Config{
		RedisClient: redisClient,
		TTL:         cfg.BoardTTL,
	})
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("failed to create board repository: %w", err)
	}

	logger.Info("using Redis board store", "addr", cfg.RedisAddr, "ttl", cfg.BoardTTL)
	return repo, func() { _ = redisClient.Close() }, nil
}
