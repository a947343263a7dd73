package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"

	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/KirkDiggler/ladderbot/internal/services/board"
	"github.com/KirkDiggler/ladderbot/internal/services/messaging"
)

// view turns service outputs into Discord messages
type view struct {
	messaging messaging.Service
	maxStep   int
	log       *slog.Logger
}

// stepLabels asks the messaging service for every step's labels
func (v *view) stepLabels(ctx context.Context, highlight int) ([]stepLabel, error) {
	labels := make([]stepLabel, 0, v.maxStep)
	for step := 1; step <= v.maxStep; step++ {
		out, err := v.messaging.GetStepLabel(ctx, &messaging.GetStepLabelInput{
			Step:        step,
			Highlighted: step == highlight,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to label step %d: %w", step, err)
		}
		labels = append(labels, stepLabel{Title: out.Title, Empty: out.EmptyMarker})
	}
	return labels, nil
}

// board renders the board embed and its components
func (v *view) board(ctx context.Context, boardID string, snap ladder.Snapshot, status string) (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	labels, err := v.stepLabels(ctx, highlightedStep(snap))
	if err != nil {
		return nil, nil, err
	}
	return renderBoardEmbed(snap, labels, status), renderBoardComponents(boardID, snap), nil
}

// actionMessage describes an intent's outcome, or returns "" when no text is available.
// The participant's name is shortened and escaped before it reaches the text.
func (v *view) actionMessage(ctx context.Context, out *board.ActionOutput) string {
	var participant *models.Participant
	if out.Participant != nil {
		p := *out.Participant
		p.Name = displayName(p.Name)
		participant = &p
	}

	msg, err := v.messaging.GetActionMessage(ctx, &messaging.GetActionMessageInput{
		Action:      out.Action,
		Applied:     out.Applied,
		Participant: participant,
		Undone:      out.Undone,
	})
	if err != nil {
		v.log.Warn("failed to build action message", "action", out.Action, "error", err)
		return ""
	}
	return msg.Message
}

// startMessage describes a freshly started board
func (v *view) startMessage(out *board.StartBoardOutput) string {
	if out.Replaced {
		return fmt.Sprintf("New game with %d participants. The previous board was replaced.", len(out.Board.Roster))
	}
	return fmt.Sprintf("New game with %d participants. Everyone starts on step 1.", len(out.Board.Roster))
}

// respondError explains err to the caller without leaking internals
func (v *view) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	out, msgErr := v.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		v.log.Error("failed to build error message", "error", msgErr)
		return RespondWithError(s, i, "Error", "Something went wrong.")
	}
	return RespondWithError(s, i, out.Title, out.Message)
}

// findParticipant looks a participant up in a snapshot
func findParticipant(snap ladder.Snapshot, id int) (models.Participant, bool) {
	return lo.Find(snap.Roster, func(p models.Participant) bool {
		return p.ID == id
	})
}
