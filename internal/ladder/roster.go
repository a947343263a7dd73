package ladder

import (
	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/samber/lo"
)

// Roster holds the ordered participants of a board.
// Every read hands out copies so callers never alias its storage.
type Roster struct {
	participants []models.Participant
}

// NewRoster creates a roster holding a copy of participants
func NewRoster(participants []models.Participant) *Roster {
	return &Roster{participants: models.CloneParticipants(participants)}
}

// All returns the participants in insertion order
func (r *Roster) All() []models.Participant {
	return models.CloneParticipants(r.participants)
}

// Len returns the number of participants
func (r *Roster) Len() int {
	return len(r.participants)
}

// Find looks up a participant by id. A stale id is not an error.
func (r *Roster) Find(id int) (models.Participant, bool) {
	return lo.Find(r.participants, func(p models.Participant) bool {
		return p.ID == id
	})
}

// SetPosition writes a single participant's position in place
func (r *Roster) SetPosition(id, position int) bool {
	_, idx, ok := lo.FindIndexOf(r.participants, func(p models.Participant) bool {
		return p.ID == id
	})
	if !ok {
		return false
	}
	r.participants[idx].Position = position
	return true
}

// Remove drops a participant, keeping the order of the rest
func (r *Roster) Remove(id int) bool {
	before := len(r.participants)
	r.participants = lo.Reject(r.participants, func(p models.Participant, _ int) bool {
		return p.ID == id
	})
	return len(r.participants) != before
}

// Replace swaps the whole roster for a copy of participants
func (r *Roster) Replace(participants []models.Participant) {
	r.participants = models.CloneParticipants(participants)
}
