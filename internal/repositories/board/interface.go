package board

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/ladderbot/internal/repositories/board Repository

import (
	"context"

	"github.com/KirkDiggler/ladderbot/internal/models"
)

// Repository defines the interface for board session storage
type Repository interface {
	// SaveBoard stores a board under its channel, replacing any previous one
	SaveBoard(ctx context.Context, input *SaveBoardInput) error

	// GetBoardByChannel retrieves the board running in a channel
	GetBoardByChannel(ctx context.Context, input *GetBoardByChannelInput) (*models.Board, error)

	// DeleteBoard removes the board running in a channel
	DeleteBoard(ctx context.Context, input *DeleteBoardInput) error
}
