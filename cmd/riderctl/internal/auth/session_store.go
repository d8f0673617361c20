package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plunoo/riderapp/pkg/sdk"
)

const sessionFile = "session.json"

// FileStore implements sdk.SessionStore using a JSON file under the
// riderctl home directory. The file holds exactly one session; login and
// impersonation overwrite it as a whole.
type FileStore struct {
	path string
}

var _ sdk.SessionStore = (*FileStore)(nil)

// NewFileStore creates a FileStore under ~/.riderctl.
func NewFileStore() (*FileStore, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreIn(dir)
}

// NewFileStoreIn creates a FileStore in the given directory. Tests use this
// to avoid touching the real home directory.
func NewFileStoreIn(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, sessionFile)}, nil
}

// HomeDir returns the riderctl state directory, ~/.riderctl.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".riderctl"), nil
}

// Save writes the session to disk, readable only by the owner.
func (s *FileStore) Save(session *sdk.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Load reads the stored session. A missing file means logged out, not an
// error; an unreadable or malformed file is reported so the manager can
// treat it as logged out.
func (s *FileStore) Load() (*sdk.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var session sdk.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Clear deletes the session file. Already gone is fine.
func (s *FileStore) Clear() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}
