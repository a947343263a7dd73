package random

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_picker.go github.com/KirkDiggler/ladderbot/internal/common/random Picker

// Picker chooses an index in [0, n)
type Picker interface {
	Intn(n int) int
}

// Config for the default picker
type Config struct {
	// Optional seed for testing
	Seed int64
}

// DefaultPicker is a seeded math/rand source safe for concurrent callers
type DefaultPicker struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new picker
func New(cfg *Config) *DefaultPicker {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &DefaultPicker{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random index, or 0 when n < 1
func (p *DefaultPicker) Intn(n int) int {
	if n < 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.random.Intn(n)
}
