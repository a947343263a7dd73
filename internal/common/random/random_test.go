package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededPickerIsDeterministic(t *testing.T) {
	a := New(&Config{Seed: 42})
	b := New(&Config{Seed: 42})

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(10), b.Intn(10))
	}
}

func TestIntnStaysInRange(t *testing.T) {
	p := New(nil)
	for i := 0; i < 100; i++ {
		n := p.Intn(3)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)
	}
	assert.Equal(t, 0, p.Intn(0))
}
