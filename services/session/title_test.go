package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTitle_AcquireRelease(t *testing.T) {
	vt := NewViewTitle(DefaultTitle)
	release := vt.Acquire("Movie | Inception")
	assert.Equal(t, "Movie | Inception", vt.String())

	release()
	assert.Equal(t, DefaultTitle, vt.String())

	// a second release must not clobber a newer title
	other := vt.Acquire("Movie | The Matrix")
	release()
	assert.Equal(t, "Movie | The Matrix", vt.String())
	other()
	assert.Equal(t, DefaultTitle, vt.String())
}
