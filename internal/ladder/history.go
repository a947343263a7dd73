package ladder

import (
	"github.com/KirkDiggler/ladderbot/internal/models"
	"github.com/samber/lo"
)

// History is the last-in-first-out undo stack
type History struct {
	entries []models.HistoryEntry
}

// NewHistory creates a stack from entries, oldest first
func NewHistory(entries []models.HistoryEntry) *History {
	h := &History{}
	for _, e := range entries {
		h.Push(e)
	}
	return h
}

// Push takes ownership of a copy of entry
func (h *History) Push(entry models.HistoryEntry) {
	h.entries = append(h.entries, entry.Clone())
}

// Pop removes and returns the newest entry
func (h *History) Pop() (models.HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return models.HistoryEntry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = models.HistoryEntry{}
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Peek returns the newest entry without removing it
func (h *History) Peek() (models.HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return models.HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1].Clone(), true
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Clear drops every entry
func (h *History) Clear() {
	h.entries = nil
}

// Entries returns copies of all entries, oldest first
func (h *History) Entries() []models.HistoryEntry {
	return lo.Map(h.entries, func(e models.HistoryEntry, _ int) models.HistoryEntry {
		return e.Clone()
	})
}
