package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"

	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
)

// Component actions. Every custom ID carries the board ID after a colon;
// participant actions also carry the participant ID.
const (
	SelectParticipant = "ladder_select"
	ButtonResetAll    = "ladder_reset_all"
	ButtonUndo        = "ladder_undo"

	actionUp     = "ladder_up"
	actionDown   = "ladder_down"
	actionReset  = "ladder_reset"
	actionRemove = "ladder_remove"
)

// Discord message limits, in runes
const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldValueLength  = 1024
	maxOptionLength      = 100

	// maxDisplayNameLength keeps a full step of names inside one field
	maxDisplayNameLength = 40
)

// componentID identifies what a button or select menu acts on
type componentID struct {
	Action        string
	BoardID       string
	ParticipantID int
}

func isBoardAction(action string) bool {
	switch action {
	case SelectParticipant, ButtonResetAll, ButtonUndo:
		return true
	}
	return false
}

func isParticipantAction(action string) bool {
	switch action {
	case actionUp, actionDown, actionReset, actionRemove:
		return true
	}
	return false
}

// String encodes the id as a Discord custom ID
func (c componentID) String() string {
	if isParticipantAction(c.Action) {
		return fmt.Sprintf("%s:%s:%d", c.Action, c.BoardID, c.ParticipantID)
	}
	return c.Action + ":" + c.BoardID
}

// parseComponentID decodes a custom ID built by componentID.String
func parseComponentID(customID string) (componentID, bool) {
	parts := strings.Split(customID, ":")

	switch {
	case len(parts) == 2 && isBoardAction(parts[0]) && parts[1] != "":
		return componentID{Action: parts[0], BoardID: parts[1]}, true

	case len(parts) == 3 && isParticipantAction(parts[0]) && parts[1] != "":
		id, err := strconv.Atoi(parts[2])
		if err != nil {
			return componentID{}, false
		}
		return componentID{Action: parts[0], BoardID: parts[1], ParticipantID: id}, true
	}

	return componentID{}, false
}

// stepLabel holds the texts used to draw one step
type stepLabel struct {
	Title string
	Empty string
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"|", `\|`,
	">", `\>`,
)

// escapeName keeps participant names from being read as markdown
func escapeName(name string) string {
	return markdownEscaper.Replace(name)
}

// truncate cuts s to at most limit runes, marking the cut with an ellipsis
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// displayName shortens and escapes a name for markdown text
func displayName(name string) string {
	return escapeName(truncate(name, maxDisplayNameLength))
}

// highlightedStep returns the step reached by the last move, or 0
func highlightedStep(snap ladder.Snapshot) int {
	if snap.LastMove == nil {
		return 0
	}
	return snap.LastMove.To
}

// renderBoardEmbed draws one field per step, bottom step first
func renderBoardEmbed(snap ladder.Snapshot, labels []stepLabel, status string) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(labels))
	for i, label := range labels {
		step := i + 1

		names := lo.FilterMap(snap.Roster, func(p models.Participant, _ int) (string, bool) {
			return fmt.Sprintf("**%s** (%d)", displayName(p.Name), p.Position), p.Position == step
		})

		value := label.Empty
		if len(names) > 0 {
			value = truncate(strings.Join(names, "\n"), maxFieldValueLength)
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   label.Title,
			Value:  value,
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "Ladder",
		Description: truncate(status, maxDescriptionLength),
		Color:       colorBoard,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Participants: %d", len(snap.Roster)),
		},
	}
}

// renderBoardComponents builds the participant select menu and the board buttons
func renderBoardComponents(boardID string, snap ladder.Snapshot) []discordgo.MessageComponent {
	var components []discordgo.MessageComponent

	if len(snap.Roster) > 0 {
		options := lo.Map(snap.Roster, func(p models.Participant, _ int) discordgo.SelectMenuOption {
			return discordgo.SelectMenuOption{
				Label:       truncate(p.Name, maxOptionLength),
				Value:       strconv.Itoa(p.ID),
				Description: fmt.Sprintf("Step %d", p.Position),
			}
		})

		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    componentID{Action: SelectParticipant, BoardID: boardID}.String(),
					Placeholder: "Pick a participant",
					Options:     options,
				},
			},
		})
	}

	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Reset all",
				Style:    discordgo.DangerButton,
				CustomID: componentID{Action: ButtonResetAll, BoardID: boardID}.String(),
				Emoji: &discordgo.ComponentEmoji{
					Name: "🔄",
				},
			},
			discordgo.Button{
				Label:    "Undo",
				Style:    discordgo.SecondaryButton,
				CustomID: componentID{Action: ButtonUndo, BoardID: boardID}.String(),
				Emoji: &discordgo.ComponentEmoji{
					Name: "↩️",
				},
			},
		},
	})

	return components
}

// renderPanel builds the ephemeral control panel for one participant
func renderPanel(boardID string, p models.Participant, maxStep int, status string) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       escapeName(truncate(p.Name, maxTitleLength/2)),
		Description: truncate(status, maxDescriptionLength),
		Color:       colorPanel,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Step",
				Value:  fmt.Sprintf("%d / %d", p.Position, maxStep),
				Inline: true,
			},
		},
	}

	button := func(action string) string {
		return componentID{Action: action, BoardID: boardID, ParticipantID: p.ID}.String()
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Up",
					Style:    discordgo.SuccessButton,
					CustomID: button(actionUp),
					Disabled: p.Position >= maxStep,
					Emoji: &discordgo.ComponentEmoji{
						Name: "⬆️",
					},
				},
				discordgo.Button{
					Label:    "Down",
					Style:    discordgo.PrimaryButton,
					CustomID: button(actionDown),
					Disabled: p.Position <= 1,
					Emoji: &discordgo.ComponentEmoji{
						Name: "⬇️",
					},
				},
				discordgo.Button{
					Label:    "Reset",
					Style:    discordgo.SecondaryButton,
					CustomID: button(actionReset),
					Disabled: p.Position == 1,
				},
				discordgo.Button{
					Label:    "Remove",
					Style:    discordgo.DangerButton,
					CustomID: button(actionRemove),
				},
			},
		},
	}

	return embed, components
}

// renderClosedPanel replaces a panel whose participant or board is gone
func renderClosedPanel(status string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Participant gone",
		Description: truncate(status, maxDescriptionLength),
		Color:       colorEnded,
	}
}

// renderEndedEmbed replaces a board that has ended or been replaced
func renderEndedEmbed(board *models.Board) *discordgo.MessageEmbed {
	names := lo.Map(board.Roster, func(p models.Participant, _ int) string {
		return fmt.Sprintf("**%s** (%d)", displayName(p.Name), p.Position)
	})

	description := "This ladder has ended."
	if len(names) > 0 {
		description += "\n\n" + strings.Join(names, "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "Ladder",
		Description: truncate(description, maxDescriptionLength),
		Color:       colorEnded,
	}
}

// renderBoardEdit builds the edit applied to a board's recorded message
func renderBoardEdit(board *models.Board, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) *discordgo.MessageEdit {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return &discordgo.MessageEdit{
		Channel:    board.ChannelID,
		ID:         board.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}
}
