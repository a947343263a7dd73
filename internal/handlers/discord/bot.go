package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/services/board"
	"github.com/KirkDiggler/ladderbot/internal/services/messaging"
)

// Bot represents the Discord bot instance
type Bot struct {
	session      *discordgo.Session
	commands     map[string]CommandHandler
	commandIDs   map[string]string // Maps command name to command ID
	boardService board.Service
	view         *view
	config       *Config
	log          *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Services
	BoardService     board.Service
	MessagingService messaging.Service

	// MaxStep is the number of steps drawn on a board
	MaxStep int

	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.BoardService == nil {
		return nil, errors.New("board service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	maxStep := cfg.MaxStep
	if maxStep < 1 {
		maxStep = ladder.DefaultMaxStep
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "discord")

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:      session,
		commands:     make(map[string]CommandHandler),
		commandIDs:   make(map[string]string),
		boardService: cfg.BoardService,
		view: &view{
			messaging: cfg.MessagingService,
			maxStep:   maxStep,
			log:       logger,
		},
		config: cfg,
		log:    logger,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	ladderCmd := NewLadderCommand(b.boardService, b.view, b.log)
	if err := b.RegisterCommand(ladderCmd); err != nil {
		return fmt.Errorf("failed to register ladder command: %w", err)
	}

	b.log.Info("bot is running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		} else {
			b.log.Info("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.session.Close()
}

// appID falls back to the session user ID if no application ID is configured
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord.
// Commands are registered for GuildID when set, globally otherwise.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	guildID := b.config.GuildID
	if guildID != "" {
		b.log.Info("registering command for guild", "command", cmd.GetName(), "guild_id", guildID)
	} else {
		b.log.Info("registering command globally", "command", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info("registered command", "command", cmd.GetName(), "command_id", createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.log.Error("error handling command", "command", name, "channel_id", i.ChannelID, "error", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.log.Error("error handling component interaction",
				"custom_id", i.MessageComponentData().CustomID,
				"channel_id", i.ChannelID,
				"error", err,
			)
		}
	}
}

// handleComponentInteraction handles button clicks and select menus
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	customID := i.MessageComponentData().CustomID

	cid, ok := parseComponentID(customID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}

	switch cid.Action {
	case SelectParticipant:
		return b.handleSelectParticipant(ctx, s, i, cid.BoardID)
	case ButtonResetAll:
		return b.handleBoardAction(ctx, s, i, cid.BoardID, b.boardService.ResetAll)
	case ButtonUndo:
		return b.handleBoardAction(ctx, s, i, cid.BoardID, b.boardService.Undo)
	default:
		return b.handleParticipantAction(ctx, s, i, cid)
	}
}

// handleSelectParticipant opens the control panel for the chosen participant
func (b *Bot) handleSelectParticipant(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, boardID string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return RespondWithEphemeralMessage(s, i, "Pick a participant first.")
	}

	id, err := strconv.Atoi(values[0])
	if err != nil {
		return fmt.Errorf("invalid participant id %q: %w", values[0], err)
	}

	out, err := b.boardService.GetBoard(ctx, &board.GetBoardInput{
		ChannelID: i.ChannelID,
		BoardID:   boardID,
	})
	if err != nil {
		return b.view.respondError(ctx, s, i, err)
	}

	p, ok := findParticipant(out.Snapshot, id)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "That participant is no longer on the board.")
	}

	embed, components := renderPanel(out.Board.ID, p, b.view.maxStep, "")
	return RespondWithEphemeralEmbed(s, i, embed, components)
}

// handleParticipantAction applies a panel button and redraws both the panel and the board
func (b *Bot) handleParticipantAction(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, cid componentID) error {
	var apply func(context.Context, *board.ParticipantActionInput) (*board.ActionOutput, error)
	switch cid.Action {
	case actionUp:
		apply = b.boardService.MoveUp
	case actionDown:
		apply = b.boardService.MoveDown
	case actionReset:
		apply = b.boardService.ResetParticipant
	case actionRemove:
		apply = b.boardService.RemoveParticipant
	default:
		return fmt.Errorf("unknown participant action %q", cid.Action)
	}

	out, err := apply(ctx, &board.ParticipantActionInput{
		ChannelID:     i.ChannelID,
		BoardID:       cid.BoardID,
		ParticipantID: cid.ParticipantID,
	})
	if errors.Is(err, board.ErrStaleBoard) {
		msg, msgErr := b.view.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		if msgErr != nil {
			return b.view.respondError(ctx, s, i, err)
		}
		return RespondWithUpdate(s, i, renderClosedPanel(msg.Message), nil)
	}
	if err != nil {
		return b.view.respondError(ctx, s, i, err)
	}

	status := b.view.actionMessage(ctx, out)
	if out.Applied {
		refreshBoard(ctx, s, b.view, out.Board, out.Snapshot, status)
	}

	if _, stillThere := findParticipant(out.Snapshot, cid.ParticipantID); !stillThere {
		return RespondWithUpdate(s, i, renderClosedPanel(status), nil)
	}

	embed, components := renderPanel(out.Board.ID, *out.Participant, b.view.maxStep, status)
	return RespondWithUpdate(s, i, embed, components)
}

// handleBoardAction applies a board button and redraws the clicked message
func (b *Bot) handleBoardAction(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, boardID string, apply func(context.Context, *board.BoardActionInput) (*board.ActionOutput, error)) error {
	out, err := apply(ctx, &board.BoardActionInput{
		ChannelID: i.ChannelID,
		BoardID:   boardID,
	})
	if err != nil {
		return b.view.respondError(ctx, s, i, err)
	}

	status := b.view.actionMessage(ctx, out)

	// Buttons on an older copy of the board also redraw the tracked message
	if i.Message != nil && i.Message.ID != out.Board.MessageID {
		refreshBoard(ctx, s, b.view, out.Board, out.Snapshot, status)
	}

	embed, components, err := b.view.board(ctx, out.Board.ID, out.Snapshot, status)
	if err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	return RespondWithUpdate(s, i, embed, components)
}
