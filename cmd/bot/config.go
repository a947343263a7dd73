package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

// Config is read from the environment, after an optional .env file
type Config struct {
	DiscordToken    string        `env:"DISCORD_TOKEN,required=true" validate:"required"`
	ApplicationID   string        `env:"APPLICATION_ID"`
	GuildID         string        `env:"GUILD_ID"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	BoardTTL        time.Duration `env:"BOARD_TTL,default=12h" validate:"min=0"`
	MaxStep         int           `env:"MAX_STEP,default=8" validate:"min=1,max=25"`
	MaxParticipants int           `env:"MAX_PARTICIPANTS,default=10" validate:"min=1,max=25"`
	LogLevel        string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// loadConfig reads and validates the process configuration
func loadConfig() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// newLogger builds a text slog logger on stderr at the configured level
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
