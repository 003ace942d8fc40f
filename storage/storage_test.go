package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put("k", []byte(`{"a":1}`)))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), value)

	require.NoError(t, store.Put("k", []byte(`{"a":2}`)))
	value, _, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), value)

	require.NoError(t, store.Delete("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is not an error
	require.NoError(t, store.Delete("k"))
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put("session", []byte("blob")))
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("blob"), value)
}

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "planejaplus-data-u1", DataKey("planejaplus", "u1"))
	assert.Equal(t, "planejaplus_calendar_events_u1", CalendarKey("planejaplus", "u1"))
	assert.Equal(t, "planejaplus_current_user", CurrentUserKey("planejaplus"))
	assert.Equal(t, "planejaplus_login_attempts", LoginAttemptsKey("planejaplus"))
}
