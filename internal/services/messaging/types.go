package messaging

import (
	"github.com/KirkDiggler/ladderbot/internal/common/random"
	"github.com/KirkDiggler/ladderbot/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a plain, factual tone
	ToneNeutral MessageTone = "neutral"

	// ToneEncouraging cheers participants on
	ToneEncouraging MessageTone = "encouraging"
)

// ServiceConfig holds the messaging service dependencies
type ServiceConfig struct {
	// Picker chooses among message variants; a time-seeded one is used when nil
	Picker random.Picker

	// MaxStep is the top rung, used to word top-of-ladder messages
	MaxStep int
}

// GetActionMessageInput contains parameters for describing an intent
type GetActionMessageInput struct {
	Action models.Action

	// Applied is false when the intent was ignored
	Applied bool

	// Participant is the targeted participant, nil for board-wide intents
	// or stale ids
	Participant *models.Participant

	// Undone is the entry consumed by an undo
	Undone *models.HistoryEntry

	PreferredTone MessageTone
}

// GetActionMessageOutput contains the generated message
type GetActionMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains the error to explain
type GetErrorMessageInput struct {
	Err error
}

// GetErrorMessageOutput contains a title and message for the user
type GetErrorMessageOutput struct {
	Title   string
	Message string
}

// GetStepLabelInput identifies a ladder step
type GetStepLabelInput struct {
	Step int

	// Highlighted marks the step reached by the last move
	Highlighted bool
}

// GetStepLabelOutput contains the labels used to render a step
type GetStepLabelOutput struct {
	Title       string
	EmptyMarker string
}
