package detail

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/popcorn/models"
	"github.com/webtor-io/popcorn/services/catalog"
)

type mockCatalog struct {
	mux    sync.Mutex
	movies map[string]*models.MovieDetail
	errs   map[string]error
	block  map[string]chan struct{}
	calls  []string
}

func (m *mockCatalog) Search(_ context.Context, _ string) ([]models.SearchResultItem, error) {
	return nil, catalog.ErrNotFound
}

func (m *mockCatalog) GetByID(_ context.Context, id string) (*models.MovieDetail, error) {
	m.mux.Lock()
	m.calls = append(m.calls, id)
	ch := m.block[id]
	m.mux.Unlock()
	if ch != nil {
		<-ch
	}
	if err := m.errs[id]; err != nil {
		return nil, err
	}
	if md, ok := m.movies[id]; ok {
		return md, nil
	}
	return nil, catalog.ErrNotFound
}

func (m *mockCatalog) Calls() []string {
	m.mux.Lock()
	defer m.mux.Unlock()
	return append([]string(nil), m.calls...)
}

func movie(id, title string) *models.MovieDetail {
	return &models.MovieDetail{
		SearchResultItem: models.SearchResultItem{ImdbID: id, Title: title},
		RuntimeMinutes:   136,
		CatalogRating:    8.7,
	}
}

func TestSelect_FetchesOnce(t *testing.T) {
	cat := &mockCatalog{movies: map[string]*models.MovieDetail{"tt0133093": movie("tt0133093", "The Matrix")}}
	s := New(cat)
	defer s.Close()

	s.Select("tt0133093")
	s.Select("tt0133093")
	s.Wait()
	s.Select("tt0133093")
	s.Wait()

	st := s.State()
	require.NotNil(t, st.Movie)
	assert.Equal(t, "The Matrix", st.Movie.Title)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, []string{"tt0133093"}, cat.Calls())
}

func TestSelect_LoadingHidesPreviousMovie(t *testing.T) {
	release := make(chan struct{})
	cat := &mockCatalog{
		movies: map[string]*models.MovieDetail{
			"tt0133093": movie("tt0133093", "The Matrix"),
			"tt1375666": movie("tt1375666", "Inception"),
		},
		block: map[string]chan struct{}{"tt1375666": release},
	}
	s := New(cat)
	defer s.Close()

	s.Select("tt0133093")
	s.Wait()
	require.NotNil(t, s.State().Movie)

	s.Select("tt1375666")
	st := s.State()
	assert.True(t, st.Loading)
	assert.Nil(t, st.Movie)
	assert.Equal(t, "tt1375666", st.ID)

	close(release)
	s.Wait()
	assert.Equal(t, "Inception", s.State().Movie.Title)
}

func TestSelect_NotFoundIsVisible(t *testing.T) {
	cat := &mockCatalog{}
	s := New(cat)
	defer s.Close()

	s.Select("tt9999999")
	s.Wait()

	st := s.State()
	assert.Nil(t, st.Movie)
	assert.False(t, st.Loading)
	assert.Equal(t, MovieNotFound, st.Error)
}

func TestSelect_RetryAfterError(t *testing.T) {
	cat := &mockCatalog{errs: map[string]error{"tt0133093": errors.New("connection reset")}}
	s := New(cat)
	defer s.Close()

	s.Select("tt0133093")
	s.Wait()
	assert.Equal(t, FailedToFetchMovieDetail, s.State().Error)

	s.Select("tt0133093")
	s.Wait()
	assert.Len(t, cat.Calls(), 2)
}

func TestSelect_RapidReselectDiscardsStale(t *testing.T) {
	release := make(chan struct{})
	cat := &mockCatalog{
		movies: map[string]*models.MovieDetail{
			"tt0133093": movie("tt0133093", "The Matrix"),
			"tt1375666": movie("tt1375666", "Inception"),
		},
		block: map[string]chan struct{}{"tt0133093": release},
	}
	s := New(cat)
	defer s.Close()

	s.Select("tt0133093")
	s.Select("tt1375666")
	close(release)
	s.Wait()

	st := s.State()
	assert.Equal(t, "tt1375666", st.ID)
	assert.Equal(t, "Inception", st.Movie.Title)
}

func TestClear(t *testing.T) {
	release := make(chan struct{})
	cat := &mockCatalog{
		movies: map[string]*models.MovieDetail{"tt0133093": movie("tt0133093", "The Matrix")},
		block:  map[string]chan struct{}{"tt0133093": release},
	}
	s := New(cat)
	defer s.Close()

	called := false
	s.OnChange(func() { called = true })

	s.Select("tt0133093")
	s.Clear()
	close(release)
	s.Wait()

	assert.Equal(t, State{}, s.State())
	assert.False(t, called)
}

func TestSelect_CancellationIsNotAnError(t *testing.T) {
	cat := &mockCatalog{errs: map[string]error{"tt0133093": errors.Wrap(context.Canceled, "request failed")}}
	s := New(cat)
	defer s.Close()

	s.Select("tt0133093")
	s.Wait()

	st := s.State()
	assert.Empty(t, st.Error)
	assert.False(t, st.Loading)
}
