package state

import (
	"sync"
	"time"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 1
)

// History is the root state structure persisted to disk by the daemon
type History struct {
	Version int `json:"version"`
	Limit   int `json:"limit"`
	// Oldest first
	Records     []MoveRecord `json:"records"`
	LastUpdated time.Time    `json:"lastUpdated"`

	mu sync.RWMutex
}

// MoveRecord is one handled desktop request
type MoveRecord struct {
	// Event correlation id, also found in the log
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Param   uint32    `json:"param"`
	Index   int       `json:"index"`
	Window  uint64    `json:"window"`
	Root    uint64    `json:"root,omitempty"`
	Desktop string    `json:"desktop,omitempty"`
	Source  string    `json:"source,omitempty"`
	Outcome string    `json:"outcome"`
	Error   string    `json:"error,omitempty"`
}

// NewHistory creates an empty history keeping at most limit records.
// A limit of 0 keeps nothing.
func NewHistory(limit int) *History {
	return &History{
		Version:     StateVersion,
		Limit:       limit,
		Records:     make([]MoveRecord, 0),
		LastUpdated: time.Now(),
	}
}

// Append adds a record, dropping the oldest ones beyond the limit
func (h *History) Append(rec MoveRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Records = append(h.Records, rec)
	h.trim()
	h.LastUpdated = time.Now()
}

// SetLimit changes the limit and trims existing records
func (h *History) SetLimit(limit int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Limit = limit
	h.trim()
}

// trim must be called with mu held
func (h *History) trim() {
	if h.Limit >= 0 && len(h.Records) > h.Limit {
		h.Records = append([]MoveRecord(nil), h.Records[len(h.Records)-h.Limit:]...)
	}
}

// Recent returns up to n newest records, newest first. n <= 0 returns all.
func (h *History) Recent(n int) []MoveRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || n > len(h.Records) {
		n = len(h.Records)
	}
	out := make([]MoveRecord, 0, n)
	for i := len(h.Records) - 1; i >= len(h.Records)-n; i-- {
		out = append(out, h.Records[i])
	}
	return out
}

// Len returns the number of stored records
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.Records)
}
