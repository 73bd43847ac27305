package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/grandcallpro/callctl/internal/errors"
)

// Store is the durable home of the session record.
//
// Token and user profile are one record: Save writes both, Clear removes
// both, and Load never returns one without the other. Reads are
// synchronous and never touch the network.
type Store interface {
	// Save persists the session, replacing any existing record
	Save(session Session) error

	// Load returns the stored session, or (nil, nil) when logged out
	Load() (*Session, error)

	// Clear removes the record. Idempotent; clearing an empty store is fine.
	Clear() error
}

const sessionFileName = "session.json"

// FileStore persists the session as a single JSON file with 0600
// permissions, written atomically so a crash can never leave a token
// without its profile or vice versa.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store rooted at dir (the file is dir/session.json)
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, sessionFileName)}
}

// Save persists the session
func (s *FileStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot create state directory", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot encode session", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), sessionFileName+".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot write session", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot set session file mode", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot close session file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "cannot replace session file", err)
	}
	return nil
}

// Load returns the stored session, or (nil, nil) when no record exists
func (s *FileStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreReadFailed, "cannot read session file", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.NewStoreCorruptError(s.path, err)
	}
	if session.Token == "" || session.User.ID == "" {
		return nil, errors.NewStoreCorruptError(s.path, nil)
	}
	return &session, nil
}

// Clear removes the record
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreClearFailed, "cannot remove session file", err)
	}
	return nil
}

// Token returns the stored bearer token or "". Satisfies api.Credentials
// together with Clear. A corrupt record reads as logged out.
func (s *FileStore) Token() string {
	session, err := s.Load()
	if err != nil || session == nil {
		return ""
	}
	return session.Token
}

// MemoryStore is an in-memory Store for tests
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save persists the session
func (s *MemoryStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

// Load returns the stored session, or (nil, nil) when empty
func (s *MemoryStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	copy := *s.session
	return &copy, nil
}

// Clear removes the record
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// Token returns the stored bearer token or ""
func (s *MemoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}
