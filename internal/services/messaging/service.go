package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/ladderbot/internal/common/random"
	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/KirkDiggler/ladderbot/internal/services/board"
)

// EmptyStepMarker is shown on a step nobody stands on
const EmptyStepMarker = "— empty —"

// service implements the Service interface
type service struct {
	picker  random.Picker
	maxStep int
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		config = &ServiceConfig{}
	}

	picker := config.Picker
	if picker == nil {
		picker = random.New(nil)
	}

	maxStep := config.MaxStep
	if maxStep < 1 {
		maxStep = ladder.DefaultMaxStep
	}

	return &service{
		picker:  picker,
		maxStep: maxStep,
	}, nil
}

// pick returns the first variant for a neutral tone, a random one otherwise
func (s *service) pick(tone MessageTone, messages []string) string {
	if tone == ToneNeutral || len(messages) == 1 {
		return messages[0]
	}
	return messages[s.picker.Intn(len(messages))]
}

// GetActionMessage returns a message describing the outcome of an intent
func (s *service) GetActionMessage(ctx context.Context, input *GetActionMessageInput) (*GetActionMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneEncouraging
	}

	var messages []string
	p := input.Participant

	switch input.Action {
	case models.ActionMoveUp, models.ActionMoveDown, models.ActionResetOne, models.ActionRemove:
		if p == nil {
			messages = []string{"That participant is no longer on the board."}
			break
		}
		messages = s.participantMessages(input.Action, input.Applied, p)

	case models.ActionResetAll:
		messages = []string{
			"Everyone is back on step 1.",
			"Fresh start! Everyone is back on step 1.",
			"Back to the bottom, all of you. Step 1 it is.",
		}

	case models.ActionUndo:
		messages = s.undoMessages(input)

	default:
		return nil, fmt.Errorf("unknown action %q", input.Action)
	}

	return &GetActionMessageOutput{
		Message: s.pick(tone, messages),
		Tone:    tone,
	}, nil
}

func (s *service) participantMessages(action models.Action, applied bool, p *models.Participant) []string {
	switch action {
	case models.ActionMoveUp:
		if !applied {
			return []string{fmt.Sprintf("%s is already on the top step.", p.Name)}
		}
		if p.Position == s.maxStep {
			return []string{
				fmt.Sprintf("%s reached the top step!", p.Name),
				fmt.Sprintf("%s made it all the way to step %d!", p.Name, p.Position),
			}
		}
		return []string{
			fmt.Sprintf("%s moved up to step %d.", p.Name, p.Position),
			fmt.Sprintf("%s climbs to step %d!", p.Name, p.Position),
			fmt.Sprintf("Up goes %s, now on step %d.", p.Name, p.Position),
		}

	case models.ActionMoveDown:
		if !applied {
			return []string{fmt.Sprintf("%s is already on step 1.", p.Name)}
		}
		return []string{
			fmt.Sprintf("%s moved down to step %d.", p.Name, p.Position),
			fmt.Sprintf("%s slips back to step %d.", p.Name, p.Position),
		}

	case models.ActionResetOne:
		if !applied {
			return []string{fmt.Sprintf("%s is already on step 1.", p.Name)}
		}
		return []string{
			fmt.Sprintf("%s is back on step 1.", p.Name),
			fmt.Sprintf("Back to the start, %s.", p.Name),
		}

	default:
		return []string{
			fmt.Sprintf("%s was removed from the board.", p.Name),
			fmt.Sprintf("%s left the ladder.", p.Name),
		}
	}
}

func (s *service) undoMessages(input *GetActionMessageInput) []string {
	if !input.Applied || input.Undone == nil {
		return []string{"Nothing to undo."}
	}

	entry := input.Undone
	if entry.IsMove() {
		if input.Participant == nil {
			return []string{"Undid the last move."}
		}
		return []string{fmt.Sprintf("Undid the last move: %s is back on step %d.", input.Participant.Name, input.Participant.Position)}
	}

	switch entry.Action {
	case models.ActionRemove:
		return []string{"Undid the removal. The roster is restored."}
	case models.ActionResetAll:
		return []string{"Undid the reset. Everyone is back where they were."}
	default:
		return []string{"Undid the last action."}
	}
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	switch {
	case ladder.IsValidationError(input.Err):
		var v ladder.ValidationError
		errors.As(input.Err, &v)
		return &GetErrorMessageOutput{
			Title:   "Check the names",
			Message: v.Error(),
		}, nil

	case errors.Is(input.Err, board.ErrStaleBoard):
		return &GetErrorMessageOutput{
			Title:   "Old board",
			Message: "This board was replaced by a newer one. Use the latest board message.",
		}, nil

	case errors.Is(input.Err, board.ErrBoardNotFound):
		return &GetErrorMessageOutput{
			Title:   "No board here",
			Message: "There is no board in this channel. Use `/ladder start` to begin.",
		}, nil

	default:
		return &GetErrorMessageOutput{
			Title:   "Something went wrong",
			Message: "That did not work. Please try again.",
		}, nil
	}
}

// GetStepLabel returns the title and empty marker for a ladder step
func (s *service) GetStepLabel(ctx context.Context, input *GetStepLabelInput) (*GetStepLabelOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := fmt.Sprintf("STEP %d", input.Step)
	if input.Highlighted {
		title = "▶ " + title
	}

	return &GetStepLabelOutput{
		Title:       title,
		EmptyMarker: EmptyStepMarker,
	}, nil
}
