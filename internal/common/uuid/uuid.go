package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// UUID hands out board session identifiers.
// Board IDs travel inside component custom IDs, which Discord caps at 100 characters.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/ladderbot/internal/common/uuid UUID
type UUID interface {
	NewUUID() string
}

// Generator issues random version 4 UUIDs without hyphens
type Generator struct{}

// New returns a board ID generator
func New() *Generator {
	return &Generator{}
}

// NewUUID returns a new 32 character board ID
func (Generator) NewUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
