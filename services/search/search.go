package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/webtor-io/popcorn/models"
	"github.com/webtor-io/popcorn/services/catalog"
)

const (
	NoMoviesFound       = "No movies found"
	FailedToFetchMovies = "Failed to fetch movies"
)

type State struct {
	Query   string                    `json:"query"`
	Movies  []models.SearchResultItem `json:"movies"`
	Loading bool                      `json:"loading"`
	Error   string                    `json:"error,omitempty"`
}

// Controller runs one search per query change. Starting a new search
// cancels the previous one, a cancelled search never touches the state.
type Controller struct {
	cat      catalog.Catalog
	mux      sync.Mutex
	state    State
	cancel   context.CancelFunc
	onChange func()
	wg       conc.WaitGroup
	ctx      context.Context
	stop     context.CancelFunc
}

func New(cat catalog.Catalog) *Controller {
	ctx, stop := context.WithCancel(context.Background())
	return &Controller{
		cat:  cat,
		ctx:  ctx,
		stop: stop,
	}
}

// OnChange registers fn to be called after a search completes.
func (s *Controller) OnChange(fn func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.onChange = fn
}

func (s *Controller) State() State {
	s.mux.Lock()
	defer s.mux.Unlock()
	st := s.state
	st.Movies = append([]models.SearchResultItem(nil), s.state.Movies...)
	return st
}

func (s *Controller) SetQuery(query string) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state.Query = query

	if strings.TrimSpace(query) == "" {
		s.state.Movies = nil
		s.state.Loading = false
		s.state.Error = ""
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.state.Loading = true
	s.state.Error = ""

	id := uuid.NewString()
	s.wg.Go(func() {
		defer cancel()
		s.fetch(ctx, id, query)
	})
}

func (s *Controller) fetch(ctx context.Context, id string, query string) {
	l := log.WithField("fetch_id", id).WithField("query", query)
	start := time.Now()
	movies, err := s.cat.Search(ctx, query)

	s.mux.Lock()
	if ctx.Err() != nil {
		s.mux.Unlock()
		l.Debug("search superseded, result discarded")
		return
	}
	s.state.Loading = false
	switch catalog.Classify(err) {
	case catalog.KindNone:
		s.state.Movies = movies
		s.state.Error = ""
		l.WithField("results", len(movies)).WithField("took", time.Since(start)).Info("search completed")
	case catalog.KindCancelled:
		l.WithError(err).Debug("search cancelled")
	case catalog.KindNotFound, catalog.KindEmptyQuery:
		s.state.Movies = nil
		s.state.Error = NoMoviesFound
		l.Info("no movies found")
	default:
		s.state.Movies = nil
		s.state.Error = catalog.Message(err, NoMoviesFound, FailedToFetchMovies)
		l.WithError(err).Warn("search failed")
	}
	onChange := s.onChange
	s.mux.Unlock()

	if onChange != nil {
		onChange()
	}
}

// Wait blocks until all started searches have finished.
func (s *Controller) Wait() {
	s.wg.Wait()
}

func (s *Controller) Close() {
	s.stop()
	s.wg.Wait()
}
