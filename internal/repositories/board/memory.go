package board

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/samber/lo"
)

// memoryRepository keeps boards for the lifetime of the process
type memoryRepository struct {
	mu     sync.RWMutex
	boards map[string]*models.Board
}

// NewMemory creates an in-process board repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		boards: make(map[string]*models.Board),
	}
}

// SaveBoard stores a copy of the board
func (r *memoryRepository) SaveBoard(ctx context.Context, input *SaveBoardInput) error {
	if err := input.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards[input.Board.ChannelID] = cloneBoard(input.Board)
	return nil
}

// GetBoardByChannel returns a copy of the channel's board
func (r *memoryRepository) GetBoardByChannel(ctx context.Context, input *GetBoardByChannelInput) (*models.Board, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boards[input.ChannelID]
	if !ok {
		return nil, ErrBoardNotFound
	}
	return cloneBoard(b), nil
}

// DeleteBoard forgets the channel's board
func (r *memoryRepository) DeleteBoard(ctx context.Context, input *DeleteBoardInput) error {
	if input == nil || input.ChannelID == "" {
		return errors.New("input and channel ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[input.ChannelID]; !ok {
		return ErrBoardNotFound
	}
	delete(r.boards, input.ChannelID)
	return nil
}

func cloneBoard(b *models.Board) *models.Board {
	out := *b
	out.Roster = models.CloneParticipants(b.Roster)
	out.History = lo.Map(b.History, func(e models.HistoryEntry, _ int) models.HistoryEntry {
		return e.Clone()
	})
	return &out
}
