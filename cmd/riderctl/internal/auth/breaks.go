package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const breaksFile = "breaks.json"

// BreaksFile holds the local shift-to-break-window mapping. The backend has
// no notion of breaks inside a shift; the mapping lives only on this
// machine and is keyed by shift id.
type BreaksFile struct {
	path string
}

// NewBreaksFile creates a BreaksFile under ~/.riderctl.
func NewBreaksFile() (*BreaksFile, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return NewBreaksFileIn(dir)
}

// NewBreaksFileIn creates a BreaksFile in the given directory.
func NewBreaksFileIn(dir string) (*BreaksFile, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return &BreaksFile{path: filepath.Join(dir, breaksFile)}, nil
}

// Load reads the full mapping. A missing file is an empty mapping.
func (b *BreaksFile) Load() (map[int64]string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int64]string{}, nil
		}
		return nil, fmt.Errorf("failed to read breaks file: %w", err)
	}
	// JSON object keys are strings; shift ids are numeric.
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal breaks file: %w", err)
	}
	breaks := make(map[int64]string, len(raw))
	for key, window := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		breaks[id] = window
	}
	return breaks, nil
}

// Set records a break window for a shift, overwriting any previous one.
func (b *BreaksFile) Set(shiftID int64, window string) error {
	if window == "" {
		return fmt.Errorf("break window is required")
	}
	breaks, err := b.Load()
	if err != nil {
		return err
	}
	breaks[shiftID] = window
	return b.save(breaks)
}

// Remove drops the break window for a shift. Removing an unknown shift is
// a no-op.
func (b *BreaksFile) Remove(shiftID int64) error {
	breaks, err := b.Load()
	if err != nil {
		return err
	}
	delete(breaks, shiftID)
	return b.save(breaks)
}

func (b *BreaksFile) save(breaks map[int64]string) error {
	raw := make(map[string]string, len(breaks))
	for id, window := range breaks {
		raw[strconv.FormatInt(id, 10)] = window
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal breaks: %w", err)
	}
	return os.WriteFile(b.path, data, 0600)
}
