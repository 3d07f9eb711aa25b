package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps tokens in a JSON file readable only by the owner. Writes
// go through a temp file and rename so a crash never leaves a torn file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

type fileEntry struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

type fileContents struct {
	Profiles map[string]fileEntry `json:"profiles"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	contents, err := f.read()
	if err != nil {
		return "", err
	}
	entry, ok := contents.Profiles[key]
	if !ok || entry.Token == "" {
		return "", ErrNoToken
	}
	return entry.Token, nil
}

func (f *FileStore) Save(_ context.Context, key, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	contents, err := f.read()
	if err != nil {
		return err
	}
	contents.Profiles[key] = fileEntry{Token: token, SavedAt: time.Now().UTC()}
	return f.write(contents)
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	contents, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := contents.Profiles[key]; !ok {
		return nil
	}
	delete(contents.Profiles, key)
	return f.write(contents)
}

func (f *FileStore) read() (*fileContents, error) {
	contents := &fileContents{Profiles: make(map[string]fileEntry)}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return contents, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return contents, nil
	}
	if err := json.Unmarshal(data, contents); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", f.path, err)
	}
	if contents.Profiles == nil {
		contents.Profiles = make(map[string]fileEntry)
	}
	return contents, nil
}

func (f *FileStore) write(contents *fileContents) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
