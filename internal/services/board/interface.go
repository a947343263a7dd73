package board

import "context"

// Service defines the interface for ladder board operations
type Service interface {
	// StartBoard starts a new game in a channel, replacing any running board
	StartBoard(ctx context.Context, input *StartBoardInput) (*StartBoardOutput, error)

	// GetBoard returns the board running in a channel
	GetBoard(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error)

	// MoveUp raises a participant one step
	MoveUp(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error)

	// MoveDown lowers a participant one step
	MoveDown(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error)

	// ResetParticipant sends a participant back to step 1
	ResetParticipant(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error)

	// RemoveParticipant drops a participant from the board
	RemoveParticipant(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error)

	// ResetAll sends every participant back to step 1
	ResetAll(ctx context.Context, input *BoardActionInput) (*ActionOutput, error)

	// Undo reverts the last applied action
	Undo(ctx context.Context, input *BoardActionInput) (*ActionOutput, error)

	// AttachMessage records the Discord message that renders the board
	AttachMessage(ctx context.Context, input *AttachMessageInput) (*AttachMessageOutput, error)

	// EndBoard removes the board from a channel
	EndBoard(ctx context.Context, input *EndBoardInput) (*EndBoardOutput, error)
}
