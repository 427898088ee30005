// Package voicestore is the durable catalog of voice style vectors. Records
// are keyed by unique name; style vectors are persisted as NPY blobs through
// an explicit codec at the store boundary.
package voicestore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Gender is the voice gender classification
type Gender string

const (
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderNeutral Gender = "X"
)

// Valid reports whether the gender is one of M, F, X
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderNeutral
}

// ParseGender converts a string to a Gender
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("invalid gender %q (want M, F or X)", s)
	}
	return g, nil
}

// VoiceRecord is the catalog's sole entity
type VoiceRecord struct {
	Name             string
	Gender           Gender
	Language         string
	Quality          int
	TrainingDuration string
	StyleVector      []float32
	IsSynthetic      bool
	Notes            string
	CreatedAt        time.Time // set by the store at insertion time
}

// Validate checks the constraints shared by both insertion paths
func (r *VoiceRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("voice name is required")
	}
	if !r.Gender.Valid() {
		return fmt.Errorf("voice %q: invalid gender %q", r.Name, string(r.Gender))
	}
	if r.Language == "" {
		return fmt.Errorf("voice %q: language is required", r.Name)
	}
	if r.Quality < 0 || r.Quality > 100 {
		return fmt.Errorf("voice %q: quality %d out of range 0-100", r.Name, r.Quality)
	}
	if len(r.StyleVector) == 0 {
		return fmt.Errorf("voice %q: style vector is required", r.Name)
	}
	return nil
}

// clone returns a deep copy so callers never share vector storage with the
// store
func (r *VoiceRecord) clone() *VoiceRecord {
	out := *r
	out.StyleVector = make([]float32, len(r.StyleVector))
	copy(out.StyleVector, r.StyleVector)
	return &out
}

// NotFoundError indicates a lookup of a voice name that does not exist
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no voice found with name: %s", e.Name)
}

// DuplicateKeyError indicates a strict insert with an existing name
type DuplicateKeyError struct {
	Name string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("voice already exists: %s", e.Name)
}

// Store is the interface for voice catalog persistence.
//
// Upsert is the bulk-load path and replaces an existing record of the same
// name. Insert is the synthetic-voice path and fails with a
// *DuplicateKeyError instead; curated catalog entries are protected from
// accidental overwrite by a synthetic voice.
type Store interface {
	Upsert(ctx context.Context, rec *VoiceRecord) error
	Insert(ctx context.Context, rec *VoiceRecord) error
	Get(ctx context.Context, name string) (*VoiceRecord, error)
	Select(ctx context.Context, sel Selector) ([]*VoiceRecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

// MemoryVoiceStore is an in-memory implementation for testing
type MemoryVoiceStore struct {
	mu     sync.RWMutex
	voices map[string]*VoiceRecord
}

// NewMemoryVoiceStore creates a new in-memory voice store
func NewMemoryVoiceStore() *MemoryVoiceStore {
	return &MemoryVoiceStore{
		voices: make(map[string]*VoiceRecord),
	}
}

// Upsert inserts or replaces a voice by name
func (s *MemoryVoiceStore) Upsert(ctx context.Context, rec *VoiceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rec.clone()
	stored.CreatedAt = time.Now()
	s.voices[stored.Name] = stored
	return nil
}

// Insert adds a new voice, failing if the name already exists
func (s *MemoryVoiceStore) Insert(ctx context.Context, rec *VoiceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.voices[rec.Name]; ok {
		return &DuplicateKeyError{Name: rec.Name}
	}

	stored := rec.clone()
	stored.CreatedAt = time.Now()
	s.voices[stored.Name] = stored
	return nil
}

// Get retrieves a voice by name
func (s *MemoryVoiceStore) Get(ctx context.Context, name string) (*VoiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.voices[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return rec.clone(), nil
}

// Select returns all voices matching the selector, ordered by name
func (s *MemoryVoiceStore) Select(ctx context.Context, sel Selector) ([]*VoiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*VoiceRecord
	for _, rec := range s.voices {
		if sel.Matches(rec) {
			matched = append(matched, rec.clone())
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})
	return matched, nil
}

// Count returns the number of voices in the catalog
func (s *MemoryVoiceStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.voices)), nil
}

// Close is a no-op for the memory store
func (s *MemoryVoiceStore) Close() error {
	return nil
}
