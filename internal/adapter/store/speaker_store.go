package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"recall/internal/domain"
)

// SpeakerStore holds enrolled voice profiles in one JSON file. It loads on
// open and saves on every mutation, replacing the module-global dictionary
// the transcription side used to share.
type SpeakerStore struct {
	path string

	mu       sync.RWMutex
	profiles map[string]domain.SpeakerProfile
}

// NewSpeakerStore opens (or initializes) the store at path.
func NewSpeakerStore(path string) (*SpeakerStore, error) {
	s := &SpeakerStore{
		path:     path,
		profiles: make(map[string]domain.SpeakerProfile),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read speaker store: %w", err)
	}
	if err := json.Unmarshal(data, &s.profiles); err != nil {
		return nil, fmt.Errorf("failed to parse speaker store: %w", err)
	}
	return s, nil
}

// Add enrolls or replaces a profile.
func (s *SpeakerStore) Add(profile domain.SpeakerProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("speaker profile has no name")
	}
	if profile.EnrolledAt == 0 {
		profile.EnrolledAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.Name] = profile
	return s.save()
}

// Remove deletes a profile. Removing an unknown name is not an error.
func (s *SpeakerStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[name]; !ok {
		return nil
	}
	delete(s.profiles, name)
	return s.save()
}

// Get returns one profile by name.
func (s *SpeakerStore) Get(name string) (domain.SpeakerProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[name]
	return p, ok
}

// List returns all profiles sorted by name.
func (s *SpeakerStore) List() []domain.SpeakerProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SpeakerProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// save persists the profile map. Caller holds the write lock.
func (s *SpeakerStore) save() error {
	data, err := json.MarshalIndent(s.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal speaker store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create speaker store dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write speaker store: %w", err)
	}
	return os.Rename(tmp, s.path)
}
