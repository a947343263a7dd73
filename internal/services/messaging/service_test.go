package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/ladderbot/internal/common/random/mocks"
	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/KirkDiggler/ladderbot/internal/services/board"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockPicker *mocks.MockPicker
	service    Service
	ctx        context.Context
}

func (s *MessagingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPicker = mocks.NewMockPicker(s.mockCtrl)
	s.ctx = context.Background()

	svc, err := NewService(&ServiceConfig{Picker: s.mockPicker, MaxStep: 8})
	s.Require().NoError(err)
	s.service = svc
}

func TestMessagingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func (s *MessagingServiceTestSuite) message(input *GetActionMessageInput) string {
	out, err := s.service.GetActionMessage(s.ctx, input)
	s.Require().NoError(err)
	return out.Message
}

func (s *MessagingServiceTestSuite) TestNeutralToneIsDeterministic() {
	msg := s.message(&GetActionMessageInput{
		Action:        models.ActionMoveUp,
		Applied:       true,
		Participant:   &models.Participant{ID: 1, Name: "Ana", Position: 3},
		PreferredTone: ToneNeutral,
	})
	s.Equal("Ana moved up to step 3.", msg)
}

func (s *MessagingServiceTestSuite) TestEncouragingToneUsesPicker() {
	s.mockPicker.EXPECT().Intn(3).Return(1)

	out, err := s.service.GetActionMessage(s.ctx, &GetActionMessageInput{
		Action:      models.ActionMoveUp,
		Applied:     true,
		Participant: &models.Participant{ID: 1, Name: "Ana", Position: 3},
	})
	s.Require().NoError(err)
	s.Equal(ToneEncouraging, out.Tone)
	s.Equal("Ana climbs to step 3!", out.Message)
}

func (s *MessagingServiceTestSuite) TestTopStep() {
	s.mockPicker.EXPECT().Intn(2).Return(0)

	msg := s.message(&GetActionMessageInput{
		Action:      models.ActionMoveUp,
		Applied:     true,
		Participant: &models.Participant{ID: 1, Name: "Ana", Position: 8},
	})
	s.Equal("Ana reached the top step!", msg)
}

func (s *MessagingServiceTestSuite) TestIgnoredIntents() {
	ana := &models.Participant{ID: 1, Name: "Ana", Position: 1}

	cases := []struct {
		name  string
		input *GetActionMessageInput
		want  string
	}{
		{
			name:  "move up at top",
			input: &GetActionMessageInput{Action: models.ActionMoveUp, Participant: &models.Participant{ID: 1, Name: "Ana", Position: 8}},
			want:  "Ana is already on the top step.",
		},
		{
			name:  "move down at bottom",
			input: &GetActionMessageInput{Action: models.ActionMoveDown, Participant: ana},
			want:  "Ana is already on step 1.",
		},
		{
			name:  "reset at bottom",
			input: &GetActionMessageInput{Action: models.ActionResetOne, Participant: ana},
			want:  "Ana is already on step 1.",
		},
		{
			name:  "stale participant",
			input: &GetActionMessageInput{Action: models.ActionRemove},
			want:  "That participant is no longer on the board.",
		},
		{
			name:  "empty history",
			input: &GetActionMessageInput{Action: models.ActionUndo},
			want:  "Nothing to undo.",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, s.message(tc.input))
		})
	}
}

func (s *MessagingServiceTestSuite) TestUndoMessages() {
	move := models.NewMoveEntry(models.ActionMoveUp, 1, 1, 2)
	s.Equal("Undid the last move: Ana is back on step 1.", s.message(&GetActionMessageInput{
		Action:      models.ActionUndo,
		Applied:     true,
		Undone:      &move,
		Participant: &models.Participant{ID: 1, Name: "Ana", Position: 1},
	}))

	removal := models.NewSnapshotEntry(models.ActionRemove, nil)
	s.Equal("Undid the removal. The roster is restored.", s.message(&GetActionMessageInput{
		Action:  models.ActionUndo,
		Applied: true,
		Undone:  &removal,
	}))

	reset := models.NewSnapshotEntry(models.ActionResetAll, nil)
	s.Equal("Undid the reset. Everyone is back where they were.", s.message(&GetActionMessageInput{
		Action:  models.ActionUndo,
		Applied: true,
		Undone:  &reset,
	}))
}

func (s *MessagingServiceTestSuite) TestUnknownAction() {
	_, err := s.service.GetActionMessage(s.ctx, &GetActionMessageInput{Action: "juggle"})
	s.Error(err)

	_, err = s.service.GetActionMessage(s.ctx, nil)
	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestErrorMessages() {
	out, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: ladder.ErrNoNames})
	s.Require().NoError(err)
	s.Equal("enter at least 1 name", out.Message)

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: fmt.Errorf("start: %w", ladder.ErrTooManyNames(10))})
	s.Require().NoError(err)
	s.Equal("maximum 10 participants", out.Message)

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: board.ErrBoardNotFound})
	s.Require().NoError(err)
	s.Contains(out.Message, "/ladder start")

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: fmt.Errorf("move: %w", board.ErrStaleBoard)})
	s.Require().NoError(err)
	s.Equal("Old board", out.Title)

	out, err = s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: errors.New("redis down")})
	s.Require().NoError(err)
	s.NotContains(out.Message, "redis")
}

func (s *MessagingServiceTestSuite) TestStepLabel() {
	out, err := s.service.GetStepLabel(s.ctx, &GetStepLabelInput{Step: 3})
	s.Require().NoError(err)
	s.Equal("STEP 3", out.Title)
	s.Equal(EmptyStepMarker, out.EmptyMarker)

	out, err = s.service.GetStepLabel(s.ctx, &GetStepLabelInput{Step: 5, Highlighted: true})
	s.Require().NoError(err)
	s.Equal("▶ STEP 5", out.Title)
}
