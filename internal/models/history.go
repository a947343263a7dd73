package models

// HistoryKind tells which variant a HistoryEntry holds
type HistoryKind string

const (
	// HistoryKindMove records a single position change
	HistoryKindMove HistoryKind = "move"

	// HistoryKindSnapshot records the whole roster before a bulk change
	HistoryKindSnapshot HistoryKind = "snapshot"
)

// Action is a facilitator intent applied to a board
type Action string

const (
	ActionStart    Action = "start"
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionResetOne Action = "reset_one"
	ActionRemove   Action = "remove"
	ActionResetAll Action = "reset_all"
	ActionUndo     Action = "undo"
)

// HistoryEntry is a reversible record of one applied mutation
type HistoryEntry struct {
	Kind   HistoryKind `json:"kind"`
	Action Action      `json:"action"`

	// Move fields
	ParticipantID int `json:"participant_id,omitempty"`
	From          int `json:"from,omitempty"`
	To            int `json:"to,omitempty"`

	// Snapshot field, owned by the entry until consumed by an undo
	Roster []Participant `json:"roster,omitempty"`
}

// NewMoveEntry records participantID moving from one step to another
func NewMoveEntry(action Action, participantID, from, to int) HistoryEntry {
	return HistoryEntry{
		Kind:          HistoryKindMove,
		Action:        action,
		ParticipantID: participantID,
		From:          from,
		To:            to,
	}
}

// NewSnapshotEntry records a copy of roster taken before a bulk change
func NewSnapshotEntry(action Action, roster []Participant) HistoryEntry {
	return HistoryEntry{
		Kind:   HistoryKindSnapshot,
		Action: action,
		Roster: CloneParticipants(roster),
	}
}

// IsMove reports whether the entry is a single position change
func (e HistoryEntry) IsMove() bool {
	return e.Kind == HistoryKindMove
}

// Clone returns a copy of the entry with its own snapshot roster
func (e HistoryEntry) Clone() HistoryEntry {
	e.Roster = CloneParticipants(e.Roster)
	return e
}

// Move is the from/to pair of the most recent single move
type Move struct {
	ParticipantID int `json:"participant_id"`
	From          int `json:"from"`
	To            int `json:"to"`
}
