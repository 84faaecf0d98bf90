package watched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/popcorn/models"
)

func entry(id string, rating int) models.WatchedEntry {
	return models.WatchedEntry{ImdbID: id, Title: id, UserRating: rating}
}

func TestStore_AddKeepsOrder(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("tt1375666", 10)))
	require.NoError(t, s.Add(entry("tt0088763", 9)))
	require.NoError(t, s.Add(entry("tt0133093", 8)))

	var ids []string
	for _, e := range s.List() {
		ids = append(ids, e.ImdbID)
	}
	assert.Equal(t, []string{"tt1375666", "tt0088763", "tt0133093"}, ids)
	assert.Equal(t, 3, s.Len())
}

func TestStore_AddRejectsDuplicate(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("tt1375666", 10)))

	err := s.Add(entry("tt1375666", 3))
	assert.ErrorIs(t, err, ErrAlreadyWatched)
	assert.Equal(t, 1, s.Len())
	e, ok := s.Get("tt1375666")
	require.True(t, ok)
	assert.Equal(t, 10, e.UserRating)
}

func TestStore_AddValidates(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Add(entry("tt1375666", 0)), ErrInvalidRating)
	assert.ErrorIs(t, s.Add(entry("tt1375666", 11)), ErrInvalidRating)
	assert.ErrorIs(t, s.Add(entry(" ", 5)), ErrInvalidEntry)
	assert.Equal(t, 0, s.Len())
}

func TestStore_AddRemoveRoundTrip(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("tt0088763", 9)))
	before := s.List()

	require.NoError(t, s.Add(entry("tt1375666", 10)))
	s.Remove("tt1375666")

	assert.Equal(t, before, s.List())
}

func TestStore_RemoveMiddle(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("a", 1)))
	require.NoError(t, s.Add(entry("b", 2)))
	require.NoError(t, s.Add(entry("c", 3)))
	listed := s.List()

	s.Remove("b")

	assert.Equal(t, []models.WatchedEntry{entry("a", 1), entry("c", 3)}, s.List())
	// earlier snapshots are not affected
	assert.Equal(t, "b", listed[1].ImdbID)
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("tt1375666", 10)))

	assert.NotPanics(t, func() {
		s.Remove("tt0000000")
	})
	assert.Equal(t, 1, s.Len())

	empty := NewStore()
	assert.NotPanics(t, func() {
		empty.Remove("tt1375666")
	})
	assert.Equal(t, 0, empty.Len())
}
