package watched

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/webtor-io/popcorn/models"
)

const (
	MinRating = 1
	MaxRating = 10
)

var (
	ErrAlreadyWatched = errors.New("movie is already in the watched list")
	ErrInvalidRating  = errors.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	ErrInvalidEntry   = errors.New("watched entry without identifier")
)

// Store is an ordered in-memory watched list, at most one entry per identifier.
type Store struct {
	mux     sync.RWMutex
	entries []models.WatchedEntry
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Add(e models.WatchedEntry) error {
	e.ImdbID = strings.TrimSpace(e.ImdbID)
	if e.ImdbID == "" {
		return ErrInvalidEntry
	}
	if e.UserRating < MinRating || e.UserRating > MaxRating {
		return ErrInvalidRating
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.indexOf(e.ImdbID) >= 0 {
		return ErrAlreadyWatched
	}
	s.entries = append(s.entries, e)
	return nil
}

// Remove deletes the entry with the given identifier, absent identifiers are ignored.
func (s *Store) Remove(id string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
}

func (s *Store) Get(id string) (models.WatchedEntry, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.WatchedEntry{}, false
	}
	return s.entries[i], true
}

func (s *Store) List() []models.WatchedEntry {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return append([]models.WatchedEntry(nil), s.entries...)
}

func (s *Store) Len() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.entries)
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ImdbID == id {
			return i
		}
	}
	return -1
}
