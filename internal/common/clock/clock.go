package clock

import "time"

// Clock stamps board sessions with the time they were started and last changed
//
//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/ladderbot/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock in UTC at the second precision the board store keeps
type SystemClock struct{}

// New returns the system clock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
