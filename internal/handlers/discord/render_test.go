package discord

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ladderbot/internal/ladder"
	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/KirkDiggler/ladderbot/internal/services/board"
	"github.com/KirkDiggler/ladderbot/internal/services/messaging"
)

func TestEscapeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Ana", want: "Ana"},
		{name: "bold", in: "**Ana**", want: `\*\*Ana\*\*`},
		{name: "underscore", in: "ana_b", want: `ana\_b`},
		{name: "backslash first", in: `a\*`, want: `a\\\*`},
		{name: "spoiler and quote", in: "||x|| >y", want: `\|\|x\|\| \>y`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeName(tt.in))
		})
	}
}

func TestComponentID(t *testing.T) {
	tests := []struct {
		name string
		id   componentID
		raw  string
	}{
		{name: "participant", id: componentID{Action: actionUp, BoardID: "board-1", ParticipantID: 7}, raw: "ladder_up:board-1:7"},
		{name: "select", id: componentID{Action: SelectParticipant, BoardID: "board-1"}, raw: "ladder_select:board-1"},
		{name: "reset all", id: componentID{Action: ButtonResetAll, BoardID: "board-1"}, raw: "ladder_reset_all:board-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.raw, tt.id.String())

			parsed, ok := parseComponentID(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.id, parsed)
		})
	}

	for _, bad := range []string{
		ButtonResetAll,
		"ladder_up:7",
		"ladder_up:board-1:x",
		"ladder_up::7",
		"ladder_jump:board-1:1",
		"ladder_undo:board-1:1",
		"",
	} {
		_, ok := parseComponentID(bad)
		assert.False(t, ok, bad)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Ana", truncate("Ana", 3))
	assert.Equal(t, "An…", truncate("Anabel", 3))
	assert.Equal(t, "ñá…", truncate("ñáéíó", 3))
}

type RenderTestSuite struct {
	suite.Suite
	view *view
	snap ladder.Snapshot
}

func (s *RenderTestSuite) SetupTest() {
	msgSvc, err := messaging.NewService(&messaging.ServiceConfig{MaxStep: 8})
	s.Require().NoError(err)

	s.view = &view{
		messaging: msgSvc,
		maxStep:   8,
		log:       slog.Default(),
	}
	s.snap = ladder.Snapshot{
		Roster: []models.Participant{
			{ID: 1, Name: "Ana", Position: 3},
			{ID: 2, Name: "Bo_b", Position: 1},
			{ID: 3, Name: "Cy", Position: 3},
		},
		LastMove: &models.Move{ParticipantID: 1, From: 2, To: 3},
	}
}

func TestRenderTestSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func (s *RenderTestSuite) TestBoardEmbed() {
	embed, _, err := s.view.board(context.Background(), "board-1", s.snap, "Ana moved up to step 3.")
	s.Require().NoError(err)

	s.Equal("Ana moved up to step 3.", embed.Description)
	s.Require().Len(embed.Fields, 8)

	s.Equal("STEP 1", embed.Fields[0].Name)
	s.Equal(`**Bo\_b** (1)`, embed.Fields[0].Value)

	s.Equal("▶ STEP 3", embed.Fields[2].Name)
	s.Equal("**Ana** (3)\n**Cy** (3)", embed.Fields[2].Value)

	s.Equal("STEP 8", embed.Fields[7].Name)
	s.Equal(messaging.EmptyStepMarker, embed.Fields[7].Value)

	s.Equal("Participants: 3", embed.Footer.Text)
}

func (s *RenderTestSuite) TestBoardEmbedWithoutLastMove() {
	s.snap.LastMove = nil
	embed, _, err := s.view.board(context.Background(), "board-1", s.snap, "")
	s.Require().NoError(err)

	for _, field := range embed.Fields {
		s.NotContains(field.Name, "▶")
	}
}

func (s *RenderTestSuite) TestBoardComponents() {
	components := renderBoardComponents("board-1", s.snap)
	s.Require().Len(components, 2)

	row, ok := components[0].(discordgo.ActionsRow)
	s.Require().True(ok)
	menu, ok := row.Components[0].(discordgo.SelectMenu)
	s.Require().True(ok)
	s.Equal("ladder_select:board-1", menu.CustomID)
	s.Require().Len(menu.Options, 3)
	s.Equal("Bo_b", menu.Options[1].Label)
	s.Equal("2", menu.Options[1].Value)
	s.Equal("Step 1", menu.Options[1].Description)

	buttons, ok := components[1].(discordgo.ActionsRow)
	s.Require().True(ok)
	s.Equal("ladder_reset_all:board-1", buttons.Components[0].(discordgo.Button).CustomID)
	s.Equal("ladder_undo:board-1", buttons.Components[1].(discordgo.Button).CustomID)
}

func (s *RenderTestSuite) TestBoardComponentsEmptyRoster() {
	components := renderBoardComponents("board-1", ladder.Snapshot{})
	s.Require().Len(components, 1)

	row := components[0].(discordgo.ActionsRow)
	s.Len(row.Components, 2)
}

func (s *RenderTestSuite) TestPanelDisablesGuardedButtons() {
	tests := []struct {
		name     string
		position int
		up       bool
		down     bool
		reset    bool
	}{
		{name: "bottom", position: 1, up: false, down: true, reset: true},
		{name: "middle", position: 4, up: false, down: false, reset: false},
		{name: "top", position: 8, up: true, down: false, reset: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			embed, components := renderPanel("board-1", models.Participant{ID: 5, Name: "Ana", Position: tt.position}, 8, "")
			s.Equal("Ana", embed.Title)

			row := components[0].(discordgo.ActionsRow)
			s.Require().Len(row.Components, 4)

			up := row.Components[0].(discordgo.Button)
			down := row.Components[1].(discordgo.Button)
			reset := row.Components[2].(discordgo.Button)
			remove := row.Components[3].(discordgo.Button)

			s.Equal("ladder_up:board-1:5", up.CustomID)
			s.Equal("ladder_remove:board-1:5", remove.CustomID)
			s.Equal(tt.up, up.Disabled)
			s.Equal(tt.down, down.Disabled)
			s.Equal(tt.reset, reset.Disabled)
			s.False(remove.Disabled)
		})
	}
}

func (s *RenderTestSuite) TestBoardEdit() {
	b := &models.Board{ChannelID: "chan", MessageID: "msg"}
	edit := renderBoardEdit(b, renderEndedEmbed(b), nil)

	s.Equal("chan", edit.Channel)
	s.Equal("msg", edit.ID)
	s.Require().NotNil(edit.Components)
	s.Empty(*edit.Components)
	s.Require().Len(*edit.Embeds, 1)
	s.Equal("This ladder has ended.", (*edit.Embeds)[0].Description)
}

func (s *RenderTestSuite) TestFindParticipant() {
	p, ok := findParticipant(s.snap, 3)
	s.True(ok)
	s.Equal("Cy", p.Name)

	_, ok = findParticipant(s.snap, 9)
	s.False(ok)
}

func (s *RenderTestSuite) TestStatusEscapesParticipantName() {
	out := &board.ActionOutput{
		Action:      models.ActionRemove,
		Applied:     true,
		Participant: &models.Participant{ID: 2, Name: "||spoiler|| **x**", Position: 2},
		Snapshot:    s.snap,
	}

	status := s.view.actionMessage(context.Background(), out)
	s.Contains(status, `\|\|spoiler\|\| \*\*x\*\*`)
	s.NotContains(status, "||spoiler||")

	embed, _, err := s.view.board(context.Background(), "board-1", out.Snapshot, status)
	s.Require().NoError(err)
	s.NotContains(embed.Description, "**x**")

	// the service output keeps the raw name
	s.Equal("||spoiler|| **x**", out.Participant.Name)
}

func (s *RenderTestSuite) TestLongNamesStayWithinDiscordLimits() {
	long := strings.Repeat("a", 150)
	snap := ladder.Snapshot{
		Roster: []models.Participant{
			{ID: 1, Name: long, Position: 1},
		},
	}

	components := renderBoardComponents("board-1", snap)
	menu := components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	s.Equal(maxOptionLength, utf8.RuneCountInString(menu.Options[0].Label))

	embed, _, err := s.view.board(context.Background(), "board-1", snap, "")
	s.Require().NoError(err)
	s.LessOrEqual(utf8.RuneCountInString(embed.Fields[0].Value), maxFieldValueLength)
	s.NotContains(embed.Fields[0].Value, long)

	panel, _ := renderPanel("board-1", snap.Roster[0], 8, "")
	s.LessOrEqual(utf8.RuneCountInString(panel.Title), maxTitleLength)

	status := s.view.actionMessage(context.Background(), &board.ActionOutput{
		Action:      models.ActionMoveUp,
		Applied:     true,
		Participant: &models.Participant{ID: 1, Name: long, Position: 2},
	})
	s.NotContains(status, long)
}

func (s *RenderTestSuite) TestFullStepFitsOneField() {
	roster := make([]models.Participant, 25)
	for i := range roster {
		roster[i] = models.Participant{ID: i + 1, Name: strings.Repeat("_", 60), Position: 1}
	}

	embed, _, err := s.view.board(context.Background(), "board-1", ladder.Snapshot{Roster: roster}, "")
	s.Require().NoError(err)
	s.LessOrEqual(utf8.RuneCountInString(embed.Fields[0].Value), maxFieldValueLength)
}
