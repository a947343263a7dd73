package ladder

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultMaxStep is the number of rungs on the ladder
	DefaultMaxStep = 8

	// DefaultMaxParticipants bounds the roster size
	DefaultMaxParticipants = 10
)

var validate = validator.New()

// Config holds the bounds an Engine enforces
type Config struct {
	// Each step is drawn as one embed field and each participant as one
	// select option; Discord allows 25 of each.
	MaxStep         int `validate:"min=1,max=25"`
	MaxParticipants int `validate:"min=1,max=25"`
}

// DefaultConfig returns the standard 8 step, 10 participant ladder
func DefaultConfig() Config {
	return Config{
		MaxStep:         DefaultMaxStep,
		MaxParticipants: DefaultMaxParticipants,
	}
}

func (c Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid ladder config: %w", err)
	}
	return nil
}
