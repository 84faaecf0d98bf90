package session

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/popcorn/models"
	"github.com/webtor-io/popcorn/services/catalog"
	"github.com/webtor-io/popcorn/services/detail"
	"github.com/webtor-io/popcorn/services/search"
	"github.com/webtor-io/popcorn/services/watched"
)

type Mode string

const (
	ModeBrowsing   Mode = "browsing"
	ModeDetailOpen Mode = "detail_open"
)

var (
	ErrNoDetailOpen    = errors.New("no movie details open")
	ErrDetailNotLoaded = errors.New("movie details are not loaded yet")
)

type Snapshot struct {
	Mode       Mode                  `json:"mode"`
	Title      string                `json:"title"`
	Search     search.State          `json:"search"`
	SelectedID string                `json:"selected_id,omitempty"`
	Detail     *detail.State         `json:"detail,omitempty"`
	UserRating int                   `json:"user_rating,omitempty"`
	Watched    []models.WatchedEntry `json:"watched"`
	Summary    models.Summary        `json:"summary"`
}

// Session is the state of a single user: the current query and its
// results, the open movie and the watched list.
type Session struct {
	search  *search.Controller
	detail  *detail.Controller
	watched *watched.Store
	title   *ViewTitle

	mux          sync.Mutex
	mode         Mode
	selectedID   string
	releaseTitle func()
	subs         map[chan Snapshot]struct{}
}

func New(cat catalog.Catalog) *Session {
	s := &Session{
		search:  search.New(cat),
		detail:  detail.New(cat),
		watched: watched.NewStore(),
		title:   NewViewTitle(DefaultTitle),
		mode:    ModeBrowsing,
		subs:    map[chan Snapshot]struct{}{},
	}
	s.search.OnChange(s.notify)
	s.detail.OnChange(s.onDetailChange)
	return s
}

func (s *Session) SetQuery(query string) {
	s.search.SetQuery(query)
	s.notify()
}

// Select opens the detail view for a catalog identifier.
func (s *Session) Select(id string) error {
	if id == "" {
		return errors.New("empty movie id")
	}
	s.mux.Lock()
	if s.mode == ModeDetailOpen && s.selectedID != id {
		s.leaveDetail()
	}
	s.mode = ModeDetailOpen
	s.selectedID = id
	s.detail.Select(id)
	s.mux.Unlock()

	log.WithField("imdb_id", id).Debug("movie selected")
	s.notify()
	return nil
}

// Back returns to browsing. It does nothing while browsing.
func (s *Session) Back() {
	s.mux.Lock()
	s.back()
	s.mux.Unlock()
	s.notify()
}

// AddWatched rates the open movie, adds it to the watched list and returns
// to browsing in one step.
func (s *Session) AddWatched(rating int) (models.WatchedEntry, error) {
	s.mux.Lock()
	if s.mode != ModeDetailOpen {
		s.mux.Unlock()
		return models.WatchedEntry{}, ErrNoDetailOpen
	}
	st := s.detail.State()
	if st.Movie == nil || st.ID != s.selectedID {
		s.mux.Unlock()
		return models.WatchedEntry{}, ErrDetailNotLoaded
	}
	e := models.NewWatchedEntry(st.Movie, rating)
	if err := s.watched.Add(e); err != nil {
		s.mux.Unlock()
		return models.WatchedEntry{}, err
	}
	s.back()
	s.mux.Unlock()

	log.WithField("imdb_id", e.ImdbID).WithField("rating", rating).Info("movie added to watched list")
	s.notify()
	return e, nil
}

func (s *Session) RemoveWatched(id string) {
	s.watched.Remove(id)
	s.notify()
}

func (s *Session) Summary() models.Summary {
	return watched.Summarize(s.watched.List())
}

func (s *Session) Snapshot() Snapshot {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	list := s.watched.List()
	sn := Snapshot{
		Mode:       s.mode,
		Title:      s.title.String(),
		Search:     s.search.State(),
		SelectedID: s.selectedID,
		Watched:    list,
		Summary:    watched.Summarize(list),
	}
	if s.mode == ModeDetailOpen {
		ds := s.detail.State()
		sn.Detail = &ds
		if e, ok := s.watched.Get(s.selectedID); ok {
			sn.UserRating = e.UserRating
		}
	}
	return sn
}

// Subscribe returns a feed of snapshots. Slow readers only get the latest one.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	s.mux.Lock()
	s.subs[ch] = struct{}{}
	s.mux.Unlock()
	return ch, func() {
		s.mux.Lock()
		defer s.mux.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

// Wait blocks until in-flight fetches have finished and been applied.
func (s *Session) Wait() {
	s.search.Wait()
	s.detail.Wait()
}

func (s *Session) Close() {
	s.search.Close()
	s.detail.Close()
	s.mux.Lock()
	defer s.mux.Unlock()
	s.leaveDetail()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *Session) onDetailChange() {
	s.mux.Lock()
	st := s.detail.State()
	if s.mode == ModeDetailOpen && st.ID == s.selectedID && st.Movie != nil && s.releaseTitle == nil {
		s.releaseTitle = s.title.Acquire(fmt.Sprintf("Movie | %v", st.Movie.Title))
	}
	s.mux.Unlock()
	s.notify()
}

func (s *Session) back() {
	if s.mode != ModeDetailOpen {
		return
	}
	s.leaveDetail()
	s.mode = ModeBrowsing
	s.selectedID = ""
}

func (s *Session) leaveDetail() {
	s.detail.Clear()
	if s.releaseTitle != nil {
		s.releaseTitle()
		s.releaseTitle = nil
	}
}

func (s *Session) notify() {
	s.mux.Lock()
	defer s.mux.Unlock()
	if len(s.subs) == 0 {
		return
	}
	sn := s.snapshot()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- sn:
		default:
		}
	}
}
