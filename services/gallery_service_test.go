package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"dugun.site/pkg/blobstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textFile(name, contentType, body string) UploadFile {
	return UploadFile{Name: name, ContentType: contentType, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(body)), nil
	}}
}

func newTestGallery(t *testing.T) (*GalleryService, *memStore, *blobstore.Store) {
	t.Helper()
	blobs, err := blobstore.New(t.TempDir(), "wedding-site", "http://localhost:3000")
	require.NoError(t, err)
	store := newMemStore()
	return NewGalleryService(blobs, store), store, blobs
}

func TestGalleryUploadSkipsNonImagesAndAppends(t *testing.T) {
	svc, store, _ := newTestGallery(t)
	before := len(store.GetState().Content.GalleryImages)

	var percents []float64
	results, err := svc.Upload(context.Background(), []UploadFile{
		textFile("a.jpg", "image/jpeg", "jpeg-bytes"),
		textFile("notes.txt", "text/plain", "hello"),
		textFile("b.png", "image/png", "png-bytes"),
	}, func(done, total int, percent float64) { percents = append(percents, percent) })
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "notes.txt is not an image file", results[1].Error)
	assert.Contains(t, results[0].URL, "/v0/b/wedding-site/o/gallery%2F")
	assert.Len(t, percents, 2)
	assert.InDelta(t, 100, percents[1], 0.001)

	gallery := store.GetState().Content.GalleryImages
	require.Len(t, gallery, before+2)
	assert.Equal(t, results[2].URL, gallery[len(gallery)-1])
	assert.Len(t, store.actions(), 1, "one content write per batch")

	stored, err := svc.ListStored()
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestGalleryUploadStopsOnFirstFailure(t *testing.T) {
	svc, store, _ := newTestGallery(t)
	failing := UploadFile{Name: "broken.jpg", ContentType: "image/jpeg", Open: func() (io.ReadCloser, error) {
		return nil, io.ErrUnexpectedEOF
	}}

	_, err := svc.Upload(context.Background(), []UploadFile{failing, textFile("ok.jpg", "image/jpeg", "x")}, nil)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Empty(t, store.actions())
}

func TestGalleryDeleteRemovesBlobThenEntry(t *testing.T) {
	svc, store, _ := newTestGallery(t)
	ctx := context.Background()
	results, err := svc.Upload(ctx, []UploadFile{textFile("a.jpg", "image/jpeg", "x")}, nil)
	require.NoError(t, err)
	url := results[0].URL
	index := len(store.GetState().Content.GalleryImages) - 1

	_, err = svc.Delete(ctx, url, 0)
	assert.ErrorIs(t, err, ErrGalleryIndexStale)

	content, err := svc.Delete(ctx, url, index)
	require.NoError(t, err)
	assert.NotContains(t, content.GalleryImages, url)

	// Nesne artık yok; ikinci silme hata verir ve galeri değişmez.
	store.state.Content.GalleryImages = append(store.state.Content.GalleryImages, url)
	_, err = svc.Delete(ctx, url, len(store.state.Content.GalleryImages)-1)
	assert.ErrorIs(t, err, ErrImageDeleteFailed)
	assert.Contains(t, store.GetState().Content.GalleryImages, url)
}

func TestGalleryDeleteRejectsForeignURL(t *testing.T) {
	svc, store, _ := newTestGallery(t)
	// Başlangıç galerisi harici görsel URL'leridir.
	url := store.GetState().Content.GalleryImages[0]

	_, err := svc.Delete(context.Background(), url, 0)
	assert.ErrorIs(t, err, ErrImageDeleteFailed)
	assert.ErrorContains(t, err, blobstore.ErrInvalidURL.Error())
}

func TestGalleryReplace(t *testing.T) {
	svc, _, _ := newTestGallery(t)

	content, err := svc.Replace(context.Background(), 1, " https://img.example/x.jpg ")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/x.jpg", content.GalleryImages[1])

	_, err = svc.Replace(context.Background(), -1, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/webp"))
	assert.True(t, IsImage("IMAGE/PNG"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage(""))
}
