package blobstore

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), "wedding-media", "http://localhost:3000/")
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1767225600000) }
	return s
}

func TestUploadURLAndDeleteRoundTrip(t *testing.T) {
	s := newTestStore(t)

	u, n, err := s.Upload("first dance.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
	assert.Equal(t, "http://localhost:3000/v0/b/wedding-media/o/gallery%2F1767225600000_first%20dance.jpg?alt=media", u)

	p, err := PathFromURL(u)
	require.NoError(t, err)
	assert.Equal(t, "gallery/1767225600000_first dance.jpg", p)

	f, err := s.Open(p)
	require.NoError(t, err)
	body, _ := io.ReadAll(f)
	f.Close()
	assert.Equal(t, "jpeg-bytes", string(body))

	urls, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{u}, urls)

	require.NoError(t, s.Delete(u))
	assert.ErrorIs(t, s.Delete(u), ErrNotFound)

	urls, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestDeleteRejectsForeignURLs(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.Delete("https://images.unsplash.com/photo-1519741497674?auto=format"), ErrInvalidURL)
	assert.ErrorIs(t, s.Delete("http://localhost:3000/v0/b/x/o/..%2F..%2Fetc%2Fpasswd?alt=media"), ErrInvalidPath)
}

func TestObjectPathStripsDirectories(t *testing.T) {
	at := time.UnixMilli(42)
	assert.Equal(t, "gallery/42_a.png", ObjectPath(at, "../../a.png"))
	assert.Equal(t, "gallery/42_b.png", ObjectPath(at, `C:\photos\b.png`))
	assert.Equal(t, "gallery/42_image", ObjectPath(at, ""))
}
