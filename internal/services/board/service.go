package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/KirkDiggler/ladderbot/internal/common/clock"
	"github.com/KirkDiggler/ladderbot/internal/common/uuid"
	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
	boardRepo "github.com/KirkDiggler/ladderbot/internal/repositories/board"
)

// service implements the Service interface.
// mu serializes every intent so they apply in the order they arrive.
type service struct {
	mu        sync.Mutex
	ladder    ladder.Config
	boardRepo boardRepo.Repository
	clock     clock.Clock
	uuid      uuid.UUID
	validator *validator.Validate
	log       *slog.Logger
}

// New creates a new board service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.BoardRepo == nil {
		return nil, ErrNilRepository
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	// Make sure the ladder bounds are usable before any board is created
	if _, err := ladder.New(cfg.Ladder); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		ladder:    cfg.Ladder,
		boardRepo: cfg.BoardRepo,
		clock:     cfg.Clock,
		uuid:      cfg.UUIDGenerator,
		validator: validator.New(),
		log:       logger.With("component", "board_service"),
	}, nil
}

func (s *service) check(input any) error {
	if err := s.validator.Struct(input); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

// StartBoard starts a new game in a channel
func (s *service) StartBoard(ctx context.Context, input *StartBoardInput) (*StartBoardOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := s.check(input); err != nil {
		return nil, err
	}

	engine, err := ladder.New(s.ladder)
	if err != nil {
		return nil, err
	}

	// A ValidationError leaves any running board untouched
	if err := engine.Start(input.Names); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.boardRepo.GetBoardByChannel(ctx, &boardRepo.GetBoardByChannelInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		if !errors.Is(err, boardRepo.ErrBoardNotFound) {
			return nil, fmt.Errorf("failed to check existing board: %w", err)
		}
		previous = nil
	}
	replaced := previous != nil

	now := s.clock.Now()
	roster, history := engine.State()
	board := &models.Board{
		ID:        s.uuid.NewUUID(),
		ChannelID: input.ChannelID,
		Roster:    roster,
		History:   history,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.boardRepo.SaveBoard(ctx, &boardRepo.SaveBoardInput{Board: board}); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}

	s.log.Info("board started",
		"channel_id", board.ChannelID,
		"board_id", board.ID,
		"participants", len(board.Roster),
		"replaced", replaced,
	)

	return &StartBoardOutput{
		Board:    board,
		Snapshot: engine.Snapshot(),
		Replaced: replaced,
		Previous: previous,
	}, nil
}

// GetBoard returns the board running in a channel
func (s *service) GetBoard(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := s.check(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, engine, err := s.load(ctx, input.ChannelID, input.BoardID)
	if err != nil {
		return nil, err
	}

	return &GetBoardOutput{
		Board:    board,
		Snapshot: engine.Snapshot(),
	}, nil
}

// MoveUp raises a participant one step
func (s *service) MoveUp(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error) {
	return s.applyToParticipant(ctx, input, models.ActionMoveUp, (*ladder.Engine).MoveUp)
}

// MoveDown lowers a participant one step
func (s *service) MoveDown(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error) {
	return s.applyToParticipant(ctx, input, models.ActionMoveDown, (*ladder.Engine).MoveDown)
}

// ResetParticipant sends a participant back to step 1
func (s *service) ResetParticipant(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error) {
	return s.applyToParticipant(ctx, input, models.ActionResetOne, (*ladder.Engine).ResetOne)
}

// RemoveParticipant drops a participant from the board
func (s *service) RemoveParticipant(ctx context.Context, input *ParticipantActionInput) (*ActionOutput, error) {
	return s.applyToParticipant(ctx, input, models.ActionRemove, (*ladder.Engine).RemoveOne)
}

func (s *service) applyToParticipant(ctx context.Context, input *ParticipantActionInput, action models.Action, fn func(*ladder.Engine, int) bool) (*ActionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := s.check(input); err != nil {
		return nil, err
	}

	return s.apply(ctx, input.ChannelID, input.BoardID, action, func(e *ladder.Engine, out *ActionOutput) {
		before, found := e.Find(input.ParticipantID)
		out.Applied = fn(e, input.ParticipantID)

		if after, ok := e.Find(input.ParticipantID); ok {
			out.Participant = &after
		} else if found {
			out.Participant = &before
		}
	})
}

// ResetAll sends every participant back to step 1
func (s *service) ResetAll(ctx context.Context, input *BoardActionInput) (*ActionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := s.check(input); err != nil {
		return nil, err
	}

	return s.apply(ctx, input.ChannelID, input.BoardID, models.ActionResetAll, func(e *ladder.Engine, out *ActionOutput) {
		out.Applied = e.ResetAll()
	})
}

// Undo reverts the last applied action
func (s *service) Undo(ctx context.Context, input *BoardActionInput) (*ActionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := s.check(input); err != nil {
		return nil, err
	}

	return s.apply(ctx, input.ChannelID, input.BoardID, models.ActionUndo, func(e *ladder.Engine, out *ActionOutput) {
		entry, ok := e.Undo()
		if !ok {
			return
		}
		out.Applied = true
		out.Undone = &entry
		if entry.IsMove() {
			if p, found := e.Find(entry.ParticipantID); found {
				out.Participant = &p
			}
		}
	})
}

// apply loads the channel's engine, runs fn and saves the board when fn applied a change
func (s *service) apply(ctx context.Context, channelID, boardID string, action models.Action, fn func(*ladder.Engine, *ActionOutput)) (*ActionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, engine, err := s.load(ctx, channelID, boardID)
	if err != nil {
		return nil, err
	}

	out := &ActionOutput{Action: action}
	fn(engine, out)

	if out.Applied {
		board.Roster, board.History = engine.State()
		board.UpdatedAt = s.clock.Now()
		if err := s.boardRepo.SaveBoard(ctx, &boardRepo.SaveBoardInput{Board: board}); err != nil {
			return nil, fmt.Errorf("failed to save board: %w", err)
		}
	}

	s.log.Debug("board action",
		"channel_id", channelID,
		"action", action,
		"applied", out.Applied,
		"history", engine.HistoryLen(),
	)

	out.Board = board
	out.Snapshot = engine.Snapshot()
	return out, nil
}

// AttachMessage records the Discord message that renders the board
func (s *service) AttachMessage(ctx context.Context, input *AttachMessageInput) (*AttachMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := s.check(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, _, err := s.load(ctx, input.ChannelID, input.BoardID)
	if err != nil {
		return nil, err
	}

	board.MessageID = input.MessageID
	if err := s.boardRepo.SaveBoard(ctx, &boardRepo.SaveBoardInput{Board: board}); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}

	return &AttachMessageOutput{Board: board}, nil
}

// EndBoard removes the board from a channel
func (s *service) EndBoard(ctx context.Context, input *EndBoardInput) (*EndBoardOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := s.check(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, _, err := s.load(ctx, input.ChannelID, "")
	if err != nil {
		return nil, err
	}

	if err := s.boardRepo.DeleteBoard(ctx, &boardRepo.DeleteBoardInput{
		ChannelID: input.ChannelID,
	}); err != nil && !errors.Is(err, boardRepo.ErrBoardNotFound) {
		return nil, fmt.Errorf("failed to delete board: %w", err)
	}

	s.log.Info("board ended", "channel_id", input.ChannelID, "board_id", board.ID)

	return &EndBoardOutput{Board: board}, nil
}

// load fetches a channel's board and rebuilds its engine.
// A non-empty boardID must name the board currently in the channel.
func (s *service) load(ctx context.Context, channelID, boardID string) (*models.Board, *ladder.Engine, error) {
	board, err := s.boardRepo.GetBoardByChannel(ctx, &boardRepo.GetBoardByChannelInput{
		ChannelID: channelID,
	})
	if err != nil {
		if errors.Is(err, boardRepo.ErrBoardNotFound) {
			return nil, nil, ErrBoardNotFound
		}
		return nil, nil, fmt.Errorf("failed to get board: %w", err)
	}

	if boardID != "" && board.ID != boardID {
		return nil, nil, ErrStaleBoard
	}

	engine, err := ladder.Load(s.ladder, board.Roster, board.History)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load board %s: %w", board.ID, err)
	}

	return board, engine, nil
}
