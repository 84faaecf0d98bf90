package detail

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/webtor-io/popcorn/models"
	"github.com/webtor-io/popcorn/services/catalog"
)

const (
	MovieNotFound            = "Movie not found"
	FailedToFetchMovieDetail = "Failed to fetch movie details"
)

type State struct {
	ID      string              `json:"id,omitempty"`
	Movie   *models.MovieDetail `json:"movie,omitempty"`
	Loading bool                `json:"loading"`
	Error   string              `json:"error,omitempty"`
}

// Controller fetches the detail record of the selected movie. It has its
// own request lifecycle, independent of searches.
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

func (s *Controller) OnChange(fn func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.onChange = fn
}

func (s *Controller) State() State {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state
}

// Select starts fetching id. Selecting the movie that is already loaded
// or being loaded does nothing.
func (s *Controller) Select(id string) {
	id = strings.TrimSpace(id)
	s.mux.Lock()
	defer s.mux.Unlock()

	if id != "" && id == s.state.ID && (s.state.Loading || s.state.Movie != nil) {
		return
	}
	s.reset()
	if id == "" {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.state.ID = id
	s.state.Loading = true

	fetchID := uuid.NewString()
	s.wg.Go(func() {
		defer cancel()
		s.fetch(ctx, fetchID, id)
	})
}

func (s *Controller) Clear() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.reset()
}

func (s *Controller) reset() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = State{}
}

func (s *Controller) fetch(ctx context.Context, fetchID string, id string) {
	l := log.WithField("fetch_id", fetchID).WithField("imdb_id", id)
	md, err := s.cat.GetByID(ctx, id)

	s.mux.Lock()
	if ctx.Err() != nil {
		s.mux.Unlock()
		l.Debug("detail fetch superseded, result discarded")
		return
	}
	s.state.Loading = false
	if catalog.Classify(err) == catalog.KindCancelled {
		l.WithError(err).Debug("detail fetch cancelled")
	} else if err != nil {
		s.state.Error = catalog.Message(err, MovieNotFound, FailedToFetchMovieDetail)
		l.WithError(err).Warn("failed to fetch movie details")
	} else {
		s.state.Movie = md
		l.Info("movie details fetched")
	}
	onChange := s.onChange
	s.mux.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (s *Controller) Wait() {
	s.wg.Wait()
}

func (s *Controller) Close() {
	s.stop()
	s.wg.Wait()
}
