package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)

	session := &Session{ID: "abc", State: StateAnalyzed, CreatedAt: time.Now()}
	store.Put(session)

	got := store.Get("abc")
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, 1, store.Count())

	store.Delete("abc")
	assert.Nil(t, store.Get("abc"))
	assert.Equal(t, 0, store.Count())
}

func TestSessionStoreMissing(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)
	assert.Nil(t, store.Get("nope"))
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)

	store.Put(&Session{ID: "abc", CreatedAt: time.Now().Add(-time.Minute)})

	assert.Nil(t, store.Get("abc"))
	assert.Equal(t, 0, store.Count())
}
