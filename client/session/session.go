// Package session keeps the client's auth state: the access token and the
// signed-in user's name. State is written through to a JSON file so it
// survives restarts; there is no package-level singleton, callers construct
// a Store and pass it where needed.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type state struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
}

type Store struct {
	path string

	mu    sync.Mutex
	state state
}

// NewStore loads the session persisted at path, if any. A missing file is a
// logged-out session, not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "reading session file")
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		// a corrupt session file means logging in again, not crashing
		s.state = state{}
	}
	return s, nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *Store) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserName
}

// IsAuthenticated is derived from token presence; it is never stored.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// SetSession stores the token and user name and persists them.
func (s *Store) SetSession(token, userName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{Token: token, UserName: userName}
	return s.persist()
}

// Logout clears the token and user name in one step and persists the empty
// session. Calling it on a logged-out session is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == (state{}) {
		return nil
	}
	s.state = state{}
	return s.persist()
}

// persist writes the state to a temp file and renames it into place, so a
// crash mid-write never leaves a truncated session file. Callers hold s.mu.
func (s *Store) persist() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return errors.Wrap(err, "marshaling session")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.Wrap(err, "creating temp session file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting session file mode")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing session file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing session file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing session file")
}
