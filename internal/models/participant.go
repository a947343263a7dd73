package models

// Participant is one person on the ladder
type Participant struct {
	// ID is unique within a board and stable for its lifetime
	ID int `json:"id"`

	// Name is the trimmed display name entered by the facilitator
	Name string `json:"name"`

	// Position is the ladder step the participant stands on, starting at 1
	Position int `json:"position"`
}

// CloneParticipants returns a copy of participants that shares no backing array
func CloneParticipants(participants []Participant) []Participant {
	if participants == nil {
		return nil
	}
	out := make([]Participant, len(participants))
	copy(out, participants)
	return out
}
