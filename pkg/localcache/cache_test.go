package localcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheJSONRoundTripSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(t, err)

	type note struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	require.NoError(t, c.SetJSON("wedding_notes", []note{{ID: "1", Content: "cake"}}))
	require.NoError(t, c.Close())

	c, err = Open(dir)
	require.NoError(t, err)
	defer c.Close()

	var got []note
	ok, err := c.GetJSON("wedding_notes", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []note{{ID: "1", Content: "cake"}}, got)

	ok, err = c.GetJSON("wedding_rsvps", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeletePrefixKeepsOtherKeys(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.Set("session:a", []byte("1")))
	require.NoError(t, c.Set("session:b", []byte("2")))
	require.NoError(t, c.Set("wedding_content", []byte("{}")))

	require.NoError(t, c.DeletePrefix("session:"))

	_, ok, err := c.Get("session:a")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Get("wedding_content")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionStorageExpiry(t *testing.T) {
	c := openTestCache(t)
	s := NewSessionStorage(c)
	now := time.Date(2026, 7, 4, 15, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set("sid", []byte("payload"), time.Hour))
	require.NoError(t, s.Set("forever", []byte("x"), 0))

	v, err := s.Get("sid")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), v)

	now = now.Add(2 * time.Hour)
	v, err = s.Get("sid")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = s.Get("forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), v)

	require.NoError(t, s.Reset())
	v, err = s.Get("forever")
	require.NoError(t, err)
	assert.Nil(t, v)
}
