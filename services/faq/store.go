package faq

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"campuscare/models"
)

// Store is the file-backed FAQ knowledge base. The list is read-mostly
// (the chat matcher consumes it on every message); admin edits rewrite
// the whole file under the write lock.
type Store struct {
	mu   sync.RWMutex
	path string
	faqs []models.FAQ
}

// NewStore loads the knowledge base from path. A missing file yields
// an empty store; a malformed file is an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read FAQ file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.faqs); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file %s: %w", path, err)
	}
	return s, nil
}

// All returns a copy of the knowledge base in stored order.
func (s *Store) All() []models.FAQ {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FAQ, len(s.faqs))
	copy(out, s.faqs)
	return out
}

// Questions returns just the question strings, in stored order.
func (s *Store) Questions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]string, len(s.faqs))
	for i, f := range s.faqs {
		questions[i] = f.Question
	}
	return questions
}

// Add appends a new entry and persists the list.
func (s *Store) Add(entry models.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.faqs = append(s.faqs, entry)
	return s.persist()
}

// UpdateAt replaces the entry at index, which must be in range.
func (s *Store) UpdateAt(index int, entry models.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.faqs) {
		return ErrNotFound
	}
	s.faqs[index] = entry
	return s.persist()
}

// RemoveAt deletes the entry at index, which must be in range.
func (s *Store) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.faqs) {
		return ErrNotFound
	}
	s.faqs = append(s.faqs[:index], s.faqs[index+1:]...)
	return s.persist()
}

// ReplaceAll swaps in a whole new list (the admin editing path).
func (s *Store) ReplaceAll(faqs []models.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.faqs = make([]models.FAQ, len(faqs))
	copy(s.faqs, faqs)
	return s.persist()
}

// persist writes the list atomically: to a temp file first, then a
// rename over the target. Caller must hold the write lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.faqs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode FAQ list: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create FAQ directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write FAQ file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace FAQ file: %w", err)
	}
	return nil
}
