package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fitness-ai-assistant/logging"
	"fitness-ai-assistant/models"
)

// JSONStore keeps the profile in a pretty-printed JSON file
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore creates the parent directory of path if needed
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Get(ctx context.Context) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) Update(ctx context.Context, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range fields {
		p[k] = v
	}
	return s.save(p)
}

func (s *JSONStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(models.Profile{})
}

// load treats a missing or corrupt file as an empty profile
func (s *JSONStore) load() (models.Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	p := models.Profile{}
	if err := json.Unmarshal(data, &p); err != nil {
		logging.L().Warnf("Ignoring unreadable profile %s: %v", s.path, err)
		return models.Profile{}, nil
	}
	return p, nil
}

// save writes through a temp file so readers never see a partial profile
func (s *JSONStore) save(p models.Profile) error {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
