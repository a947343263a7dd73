package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"

	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/KirkDiggler/ladderbot/internal/services/board"
)

// LadderCommand handles the /ladder command
type LadderCommand struct {
	BaseCommand
	boardService board.Service
	view         *view
	log          *slog.Logger
}

// NewLadderCommand creates a new ladder command handler
func NewLadderCommand(boardService board.Service, v *view, logger *slog.Logger) *LadderCommand {
	return &LadderCommand{
		BaseCommand: BaseCommand{
			Name:        "ladder",
			Description: "Track participants on a step ladder",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a new board in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "names",
							Description: "Participant names separated by commas",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Post the board again",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "undo",
					Description: "Undo the last action",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "End the board in this channel",
				},
			},
		},
		boardService: boardService,
		view:         v,
		log:          logger,
	}
}

// Handle processes a Discord interaction for the ladder command
func (c *LadderCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]

	switch sub.Name {
	case "start":
		return c.handleStart(ctx, s, i, sub.Options)
	case "show":
		return c.handleShow(ctx, s, i)
	case "undo":
		return c.handleUndo(ctx, s, i)
	case "end":
		return c.handleEnd(ctx, s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleStart handles the start subcommand
func (c *LadderCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	var raw string
	if opt, ok := lo.Find(options, func(o *discordgo.ApplicationCommandInteractionDataOption) bool {
		return o.Name == "names"
	}); ok {
		raw = opt.StringValue()
	}

	out, err := c.boardService.StartBoard(ctx, &board.StartBoardInput{
		ChannelID: i.ChannelID,
		Names:     ladder.ParseNames(raw),
	})
	if err != nil {
		if !ladder.IsValidationError(err) {
			c.log.Error("failed to start board", "channel_id", i.ChannelID, "error", err)
		}
		return c.view.respondError(ctx, s, i, err)
	}

	if out.Previous != nil {
		closeBoard(s, c.log, out.Previous)
	}

	return c.post(ctx, s, i, out.Board, out.Snapshot, c.view.startMessage(out))
}

// handleShow posts the board as a new message and makes it the tracked one
func (c *LadderCommand) handleShow(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.boardService.GetBoard(ctx, &board.GetBoardInput{ChannelID: i.ChannelID})
	if err != nil {
		return c.view.respondError(ctx, s, i, err)
	}

	return c.post(ctx, s, i, out.Board, out.Snapshot, "")
}

// post answers with the board and records the new message on it
func (c *LadderCommand) post(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *models.Board, snap ladder.Snapshot, status string) error {
	embed, components, err := c.view.board(ctx, b.ID, snap, status)
	if err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}

	if err := RespondWithEmbed(s, i, embed, components); err != nil {
		return fmt.Errorf("failed to post board: %w", err)
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("failed to fetch board message: %w", err)
	}

	if _, err := c.boardService.AttachMessage(ctx, &board.AttachMessageInput{
		ChannelID: b.ChannelID,
		BoardID:   b.ID,
		MessageID: msg.ID,
	}); err != nil {
		return fmt.Errorf("failed to attach board message: %w", err)
	}

	c.log.Debug("board message posted", "channel_id", b.ChannelID, "message_id", msg.ID)
	return nil
}

// handleUndo handles the undo subcommand
func (c *LadderCommand) handleUndo(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.boardService.Undo(ctx, &board.BoardActionInput{ChannelID: i.ChannelID})
	if err != nil {
		return c.view.respondError(ctx, s, i, err)
	}

	status := c.view.actionMessage(ctx, out)
	if out.Applied {
		refreshBoard(ctx, s, c.view, out.Board, out.Snapshot, status)
	}

	return RespondWithEphemeralMessage(s, i, status)
}

// handleEnd handles the end subcommand
func (c *LadderCommand) handleEnd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.boardService.EndBoard(ctx, &board.EndBoardInput{ChannelID: i.ChannelID})
	if err != nil {
		return c.view.respondError(ctx, s, i, err)
	}

	closeBoard(s, c.log, out.Board)

	return RespondWithEphemeralMessage(s, i, "The ladder has ended.")
}

// closeBoard turns a board's recorded message into its final standings without controls
func closeBoard(s *discordgo.Session, log *slog.Logger, b *models.Board) {
	if b.MessageID == "" {
		return
	}

	if _, err := s.ChannelMessageEditComplex(renderBoardEdit(b, renderEndedEmbed(b), nil)); err != nil {
		log.Warn("failed to close board message", "channel_id", b.ChannelID, "message_id", b.MessageID, "error", err)
	}
}

// refreshBoard redraws the board's recorded message
func refreshBoard(ctx context.Context, s *discordgo.Session, v *view, b *models.Board, snap ladder.Snapshot, status string) {
	if b.MessageID == "" {
		return
	}

	embed, components, err := v.board(ctx, b.ID, snap, status)
	if err != nil {
		v.log.Error("failed to render board", "channel_id", b.ChannelID, "error", err)
		return
	}

	if _, err := s.ChannelMessageEditComplex(renderBoardEdit(b, embed, components)); err != nil {
		v.log.Error("failed to update board message", "channel_id", b.ChannelID, "message_id", b.MessageID, "error", err)
	}
}
