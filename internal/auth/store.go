package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fivetwenty-io/batfish/internal/constants"
)

// FileTokenStore keeps the raw token in a plaintext file. The file holds
// nothing but the token and is overwritten wholesale on Save.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store backed by path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// NewHomeTokenStore creates a store backed by ~/.batfish.
func NewHomeTokenStore() (*FileTokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrNoHomeDirectory, err)
	}

	return NewFileTokenStore(filepath.Join(home, constants.TokenFileName)), nil
}

// Path returns the backing file path.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Load reads the token. A missing file yields an empty token.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("reading token file %s: %w", s.path, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Save overwrites the file with token, readable by the owner only.
func (s *FileTokenStore) Save(token string) error {
	err := os.MkdirAll(filepath.Dir(s.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	err = os.WriteFile(s.path, []byte(token), constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing token file %s: %w", s.path, err)
	}

	// WriteFile keeps the mode of an existing file.
	err = os.Chmod(s.path, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("setting token file permissions: %w", err)
	}

	return nil
}

// MemoryTokenStore keeps the token in memory.
type MemoryTokenStore struct {
	mutex sync.RWMutex
	token string
	saves int
}

// NewMemoryTokenStore creates a store seeded with token.
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

// Load returns the stored token.
func (s *MemoryTokenStore) Load() (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token, nil
}

// Save replaces the stored token.
func (s *MemoryTokenStore) Save(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
	s.saves++

	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryTokenStore) Saves() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.saves
}
