package board

import (
	"log/slog"

	"github.com/KirkDiggler/ladderbot/internal/common/clock"
	"github.com/KirkDiggler/ladderbot/internal/common/uuid"
	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
	boardRepo "github.com/KirkDiggler/ladderbot/internal/repositories/board"
)

// Config holds configuration for the board service
type Config struct {
	// Ladder bounds applied to every board
	Ladder ladder.Config

	// Repository dependencies
	BoardRepo boardRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger is optional; slog.Default is used when nil
	Logger *slog.Logger
}

// StartBoardInput contains parameters for starting a board
type StartBoardInput struct {
	// ChannelID is the Discord channel the board runs in
	ChannelID string `validate:"required"`

	// Names are the participant names in roster order
	Names []string
}

// StartBoardOutput contains the result of starting a board
type StartBoardOutput struct {
	Board    *models.Board
	Snapshot ladder.Snapshot

	// Replaced is true when a running board was discarded
	Replaced bool

	// Previous is the discarded board, nil when nothing was replaced
	Previous *models.Board
}

// GetBoardInput contains parameters for fetching a board
type GetBoardInput struct {
	ChannelID string `validate:"required"`

	// BoardID, when set, must match the channel's board or ErrStaleBoard is returned
	BoardID string
}

// GetBoardOutput contains the board and its redraw snapshot
type GetBoardOutput struct {
	Board    *models.Board
	Snapshot ladder.Snapshot
}

// ParticipantActionInput targets one participant on a channel's board
type ParticipantActionInput struct {
	ChannelID     string `validate:"required"`
	BoardID       string
	ParticipantID int
}

// BoardActionInput targets a channel's whole board
type BoardActionInput struct {
	ChannelID string `validate:"required"`
	BoardID   string
}

// ActionOutput contains the result of an intent
type ActionOutput struct {
	Board    *models.Board
	Snapshot ladder.Snapshot

	// Action is the intent that was requested
	Action models.Action

	// Applied is false when the intent was a guarded no-op
	Applied bool

	// Participant is the targeted participant after the intent, or as it
	// was before removal; nil when the id was stale
	Participant *models.Participant

	// Undone is the history entry an Undo consumed
	Undone *models.HistoryEntry
}

// AttachMessageInput contains parameters for recording the board message
type AttachMessageInput struct {
	ChannelID string `validate:"required"`
	BoardID   string
	MessageID string `validate:"required"`
}

// AttachMessageOutput contains the updated board
type AttachMessageOutput struct {
	Board *models.Board
}

// EndBoardInput contains parameters for ending a board
type EndBoardInput struct {
	ChannelID string `validate:"required"`
}

// EndBoardOutput contains the board as it was when ended
type EndBoardOutput struct {
	Board *models.Board
}
