package models

import (
	"time"
)

// Board is the ladder session running in one Discord channel
type Board struct {
	// ID is the unique identifier for the board session
	ID string `json:"id"`

	// ChannelID is the Discord channel the board lives in
	ChannelID string `json:"channel_id"`

	// MessageID is the Discord message that renders the board
	MessageID string `json:"message_id,omitempty"`

	// Roster is the ordered set of participants
	Roster []Participant `json:"roster"`

	// History is the undo stack, oldest entry first
	History []HistoryEntry `json:"history"`

	// CreatedAt is when the board was started
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the board last changed
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the board still has participants on it
func (b *Board) IsActive() bool {
	return b != nil && len(b.Roster) > 0
}
