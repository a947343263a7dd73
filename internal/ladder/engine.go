package ladder

import (
	"fmt"

	"github.com/KirkDiggler/ladderbot/internal/models"
)

// Snapshot is what a presentation layer needs to redraw a board
type Snapshot struct {
	Roster []models.Participant

	// LastMove is set when the newest history entry is a single move
	LastMove *models.Move
}

// Engine owns one board's roster and undo history.
// It is not safe for concurrent use; callers serialize intents.
type Engine struct {
	config  Config
	roster  *Roster
	history *History
}

// New creates an engine with an empty roster
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config:  cfg,
		roster:  NewRoster(nil),
		history: NewHistory(nil),
	}, nil
}

// Load rebuilds an engine from stored roster and history
func Load(cfg Config, roster []models.Participant, history []models.HistoryEntry) (*Engine, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.checkRoster(roster); err != nil {
		return nil, err
	}
	for i, entry := range history {
		switch entry.Kind {
		case models.HistoryKindMove:
			if !cfg.inBounds(entry.From) || !cfg.inBounds(entry.To) {
				return nil, fmt.Errorf("%w: history entry %d moves %d -> %d", ErrCorruptState, i, entry.From, entry.To)
			}
		case models.HistoryKindSnapshot:
			if err := cfg.checkRoster(entry.Roster); err != nil {
				return nil, fmt.Errorf("history entry %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("%w: history entry %d has kind %q", ErrCorruptState, i, entry.Kind)
		}
	}

	e.roster.Replace(roster)
	e.history = NewHistory(history)
	return e, nil
}

// Config returns the bounds the engine enforces
func (e *Engine) Config() Config {
	return e.config
}

// Start replaces the roster with fresh participants on step 1 and clears history.
// On a ValidationError the engine keeps its previous state.
func (e *Engine) Start(names []string) error {
	names = CleanNames(names)
	if len(names) == 0 {
		return ErrNoNames
	}
	if len(names) > e.config.MaxParticipants {
		return ErrTooManyNames(e.config.MaxParticipants)
	}

	participants := make([]models.Participant, len(names))
	for i, name := range names {
		participants[i] = models.Participant{ID: i + 1, Name: name, Position: 1}
	}

	e.roster.Replace(participants)
	e.history.Clear()
	return nil
}

// MoveUp raises a participant one step
func (e *Engine) MoveUp(id int) bool {
	p, ok := e.roster.Find(id)
	if !ok || p.Position >= e.config.MaxStep {
		return false
	}
	return e.move(models.ActionMoveUp, p, p.Position+1)
}

// MoveDown lowers a participant one step
func (e *Engine) MoveDown(id int) bool {
	p, ok := e.roster.Find(id)
	if !ok || p.Position <= 1 {
		return false
	}
	return e.move(models.ActionMoveDown, p, p.Position-1)
}

// ResetOne sends a participant back to step 1
func (e *Engine) ResetOne(id int) bool {
	p, ok := e.roster.Find(id)
	if !ok || p.Position == 1 {
		return false
	}
	return e.move(models.ActionResetOne, p, 1)
}

func (e *Engine) move(action models.Action, p models.Participant, to int) bool {
	e.history.Push(models.NewMoveEntry(action, p.ID, p.Position, to))
	e.roster.SetPosition(p.ID, to)
	return true
}

// RemoveOne drops a participant from the roster
func (e *Engine) RemoveOne(id int) bool {
	if _, ok := e.roster.Find(id); !ok {
		return false
	}
	e.history.Push(models.NewSnapshotEntry(models.ActionRemove, e.roster.All()))
	e.roster.Remove(id)
	return true
}

// ResetAll sends every participant back to step 1.
// It records a snapshot even when nothing changes or the roster is empty.
func (e *Engine) ResetAll() bool {
	before := e.roster.All()
	e.history.Push(models.NewSnapshotEntry(models.ActionResetAll, before))

	after := models.CloneParticipants(before)
	for i := range after {
		after[i].Position = 1
	}
	e.roster.Replace(after)
	return true
}

// Undo reverts the newest history entry and returns it
func (e *Engine) Undo() (models.HistoryEntry, bool) {
	last, ok := e.history.Pop()
	if !ok {
		return models.HistoryEntry{}, false
	}

	switch last.Kind {
	case models.HistoryKindSnapshot:
		e.roster.Replace(last.Roster)
	case models.HistoryKindMove:
		e.roster.SetPosition(last.ParticipantID, last.From)
	}
	return last, true
}

// Find returns a copy of a participant
func (e *Engine) Find(id int) (models.Participant, bool) {
	return e.roster.Find(id)
}

// Active reports whether a game is running
func (e *Engine) Active() bool {
	return e.roster.Len() > 0
}

// Snapshot returns the roster and the last single move for redraw
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{Roster: e.roster.All()}
	if last, ok := e.history.Peek(); ok && last.IsMove() {
		snap.LastMove = &models.Move{
			ParticipantID: last.ParticipantID,
			From:          last.From,
			To:            last.To,
		}
	}
	return snap
}

// State returns independent copies of the roster and history for storage
func (e *Engine) State() ([]models.Participant, []models.HistoryEntry) {
	return e.roster.All(), e.history.Entries()
}

// HistoryLen returns the number of undoable entries
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

func (c Config) inBounds(position int) bool {
	return position >= 1 && position <= c.MaxStep
}

func (c Config) checkRoster(roster []models.Participant) error {
	if len(roster) > c.MaxParticipants {
		return fmt.Errorf("%w: %d participants", ErrCorruptState, len(roster))
	}
	seen := make(map[int]struct{}, len(roster))
	for _, p := range roster {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate participant id %d", ErrCorruptState, p.ID)
		}
		seen[p.ID] = struct{}{}
		if !c.inBounds(p.Position) {
			return fmt.Errorf("%w: participant %d on step %d", ErrCorruptState, p.ID, p.Position)
		}
	}
	return nil
}
