package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultStateDir is the directory under the user cache dir for state files
	DefaultStateDir = "movetodesktop"
	// DefaultStateFile is the state file name
	DefaultStateFile = "history.json"
)

// GetStatePath returns the full path to the state file
func GetStatePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, DefaultStateDir, DefaultStateFile)
}

// LoadHistoryFrom loads history from a specific path, creating a new one if
// the file doesn't exist
func LoadHistoryFrom(path string, limit int) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return new empty history if file doesn't exist
			return NewHistory(limit), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	// Handle version migration if needed
	if h.Version < StateVersion {
		h.Version = StateVersion
	}
	if h.Records == nil {
		h.Records = make([]MoveRecord, 0)
	}
	h.SetLimit(limit)

	return &h, nil
}

// SaveTo persists history to a specific path
func (h *History) SaveTo(path string) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Marshal with indentation for readability
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up temp file on failure
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}

// Reset clears all records and saves to path
func (h *History) Reset(path string) error {
	h.mu.Lock()
	h.Records = make([]MoveRecord, 0)
	h.LastUpdated = time.Now()
	h.mu.Unlock()

	return h.SaveTo(path)
}
