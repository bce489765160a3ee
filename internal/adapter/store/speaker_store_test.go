package store

import (
	"path/filepath"
	"testing"

	"recall/internal/domain"
)

func TestSpeakerStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speakers.json")

	s, err := NewSpeakerStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(domain.SpeakerProfile{
		Name:      "alice",
		Embedding: []float32{0.1, 0.2, 0.3},
	}); err != nil {
		t.Fatal(err)
	}

	// Reopen: save-on-mutate must have persisted the profile.
	reopened, err := NewSpeakerStore(path)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := reopened.Get("alice")
	if !ok {
		t.Fatal("profile lost across reopen")
	}
	if len(p.Embedding) != 3 {
		t.Errorf("embedding lost: %v", p.Embedding)
	}
	if p.EnrolledAt == 0 {
		t.Error("expected EnrolledAt to be stamped")
	}
}

func TestSpeakerStoreListSorted(t *testing.T) {
	s, err := NewSpeakerStore(filepath.Join(t.TempDir(), "speakers.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"carol", "alice", "bob"} {
		if err := s.Add(domain.SpeakerProfile{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	got := s.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(got))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if got[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, got[i].Name)
		}
	}
}

func TestSpeakerStoreRemove(t *testing.T) {
	s, err := NewSpeakerStore(filepath.Join(t.TempDir(), "speakers.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(domain.SpeakerProfile{Name: "dave"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("dave"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("dave"); ok {
		t.Error("profile should be gone")
	}
	if err := s.Remove("never_existed"); err != nil {
		t.Errorf("removing an unknown name must not error: %v", err)
	}
}

func TestSpeakerStoreRejectsEmptyName(t *testing.T) {
	s, err := NewSpeakerStore(filepath.Join(t.TempDir(), "speakers.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(domain.SpeakerProfile{}); err == nil {
		t.Error("expected error for empty name")
	}
}
