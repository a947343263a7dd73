package board

import (
	"errors"

	"github.com/KirkDiggler/ladderbot/internal/models"
)

// ErrBoardNotFound is returned when a channel has no board
var ErrBoardNotFound = errors.New("board not found")

type SaveBoardInput struct {
	Board *models.Board
}

type GetBoardByChannelInput struct {
	ChannelID string
}

type DeleteBoardInput struct {
	ChannelID string
}

func (i *SaveBoardInput) validate() error {
	if i == nil || i.Board == nil {
		return errors.New("input and board cannot be nil")
	}
	if i.Board.ChannelID == "" {
		return errors.New("board channel ID cannot be empty")
	}
	return nil
}
