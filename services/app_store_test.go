package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"dugun.site/models"
	"dugun.site/pkg/idgen"
	"dugun.site/pkg/localcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRemote struct {
	IRemoteStore
	mu        sync.Mutex
	documents int
}

func (c *countingRemote) WriteDocument(ctx context.Context, name models.Collection, doc any) error {
	c.mu.Lock()
	c.documents++
	c.mu.Unlock()
	return c.IRemoteStore.WriteDocument(ctx, name, doc)
}

func (c *countingRemote) documentWrites() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.documents
}

func openStateCache(t *testing.T) *localcache.Cache {
	t.Helper()
	cache, err := localcache.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestAppStoreDispatchUpdatesStateCacheAndRemote(t *testing.T) {
	ctx := context.Background()
	remote, _ := newTestRemoteStore(t, openTestDB(t))
	cache := openStateCache(t)
	store := NewAppStore(remote, cache)
	require.NoError(t, store.Start(ctx))
	t.Cleanup(store.Stop)

	rsvp := models.RSVP{ID: "1700000000000", Name: "Ada", Status: models.RSVPStatusAttending, PlusOne: true}
	require.NoError(t, store.Dispatch(ctx, SaveRSVP{RSVP: rsvp}))

	require.Eventually(t, func() bool {
		st := store.GetState()
		return len(st.RSVPs) == 1 && st.RSVPs[0].Name == "Ada"
	}, time.Second, 5*time.Millisecond)

	var cached []models.RSVP
	require.Eventually(t, func() bool {
		ok, err := cache.GetJSON(CacheKeyRSVPs, &cached)
		return err == nil && ok && len(cached) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Ada", cached[0].Name)

	snap, err := remote.Snapshot(ctx, models.CollectionRSVPs)
	require.NoError(t, err)
	assert.Contains(t, string(snap), `"name":"Ada"`)
}

func TestAppStoreFeedOverwritesLocalState(t *testing.T) {
	ctx := context.Background()
	remote, _ := newTestRemoteStore(t, openTestDB(t))
	store := NewAppStore(remote, nil)
	require.NoError(t, store.Start(ctx))
	t.Cleanup(store.Stop)

	// Başka bir istemcinin yazımı.
	require.NoError(t, remote.Write(ctx, models.CollectionNotes, "1", models.MeetingNote{Content: "DJ ile görüş", Date: "1/5/2026"}))

	require.Eventually(t, func() bool {
		notes := store.GetState().Notes
		return len(notes) == 1 && notes[0].Content == "DJ ile görüş"
	}, time.Second, 5*time.Millisecond)
}

func TestAppStoreSeedsFromCacheBeforeRemote(t *testing.T) {
	cache := openStateCache(t)
	content := models.InitialContent()
	content.HeroTagline = "önbellekten"
	require.NoError(t, cache.SetJSON(CacheKeyContent, content))
	require.NoError(t, cache.SetJSON(CacheKeyRSVPs, []models.RSVP{{ID: "1", Name: "Cached", Status: models.RSVPStatusUndecided}}))

	remote, _ := newTestRemoteStore(t, openTestDB(t))
	store := NewAppStore(remote, cache)
	store.seedFromCache(context.Background())

	st := store.GetState()
	assert.Equal(t, "önbellekten", st.Content.HeroTagline)
	require.Len(t, st.RSVPs, 1)
	assert.Equal(t, "Cached", st.RSVPs[0].Name)
}

func TestAppStoreMigratesLegacyBrandingOnce(t *testing.T) {
	ctx := context.Background()
	inner, _ := newTestRemoteStore(t, openTestDB(t))
	legacy := models.InitialContent()
	legacy.CoupleNames = "Florie & Louie"
	legacy.OpeningScreen.Brand = "Simply Louie"
	require.NoError(t, inner.WriteDocument(ctx, models.CollectionContent, legacy))

	remote := &countingRemote{IRemoteStore: inner}
	store := NewAppStore(remote, nil)
	require.NoError(t, store.Start(ctx))
	t.Cleanup(store.Stop)

	require.Eventually(t, func() bool {
		return store.GetState().Content.CoupleNames == models.CanonicalCoupleNames
	}, time.Second, 5*time.Millisecond)

	// Düzeltilmiş belge akıştan geri gelir; ikinci bir yazım olmamalı.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, remote.documentWrites())

	c := store.GetState().Content
	assert.Equal(t, models.CanonicalSealInitials, c.OpeningScreen.SealInitials)
	assert.Equal(t, models.CanonicalPanelTitle, c.AdminPanelTitle)
	assert.Equal(t, models.CanonicalCoupleNames, c.OpeningScreen.Brand)
}

func TestMigrateLegacyBrandingIsIdempotent(t *testing.T) {
	canonical := models.InitialContent()
	out, changed := MigrateLegacyBranding(canonical)
	assert.False(t, changed)
	assert.Equal(t, canonical, out)

	legacy := models.InitialContent()
	legacy.CoupleNames = "Simply Louie"
	once, changed := MigrateLegacyBranding(legacy)
	require.True(t, changed)
	_, changedAgain := MigrateLegacyBranding(once)
	assert.False(t, changedAgain)
}

func TestAppStoreDispatchReturnsRemoteErrorButKeepsLocalUpdate(t *testing.T) {
	ctx := context.Background()
	remote, _ := newTestRemoteStore(t, openTestDB(t))
	store := NewAppStore(remote, nil)

	var notified int
	unsub := store.Subscribe(func(State) { notified++ })
	defer unsub()

	// Boş kimlik uzak depo tarafından reddedilir.
	err := store.Dispatch(ctx, SaveRSVP{RSVP: models.RSVP{Name: "Kimliksiz", Status: models.RSVPStatusUndecided}})
	assert.ErrorIs(t, err, ErrEmptyRecordID)
	assert.Len(t, store.GetState().RSVPs, 1)
	assert.Equal(t, 1, notified)
}

func TestAppStoreSequentialEditsSurviveFeedDeliveries(t *testing.T) {
	ctx := context.Background()
	remote, _ := newTestRemoteStore(t, openTestDB(t))
	require.NoError(t, remote.WriteDocument(ctx, models.CollectionContent, models.InitialContent()))

	store := NewAppStore(remote, nil)
	require.NoError(t, store.Start(ctx))
	t.Cleanup(store.Stop)
	require.Eventually(t, func() bool {
		// İlk görüntü uygulanana kadar floor 0 kalır.
		store.mu.RLock()
		defer store.mu.RUnlock()
		return store.gates[models.CollectionContent].floor == 1
	}, time.Second, 5*time.Millisecond)

	editor := NewContentEditor(store, nil, idgen.New(nil))
	t.Cleanup(editor.Close)
	before := len(store.GetState().Content.Checklist)

	const edits = 200
	for i := 0; i < edits; i++ {
		_, err := editor.AddChecklistItem(ctx, fmt.Sprintf("görev %d", i))
		require.NoError(t, err)
	}
	assert.Len(t, store.GetState().Content.Checklist, before+edits)

	raw, err := remote.Snapshot(ctx, models.CollectionContent)
	require.NoError(t, err)
	var stored models.SiteContent
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored.Checklist, before+edits)

	// Kuyrukta kalan görüntüler yerel durumu geri almamalı.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, store.GetState().Content.Checklist, before+edits)
}

func TestAppStoreIgnoresSnapshotsOlderThanOwnWrite(t *testing.T) {
	ctx := context.Background()
	remote, _ := newTestRemoteStore(t, openTestDB(t))
	store := NewAppStore(remote, nil)

	require.NoError(t, store.Dispatch(ctx, AddNote{Note: models.MeetingNote{ID: "1", Content: "çiçekçi", Date: "1/5/2026"}}))
	require.Equal(t, uint64(1), remote.Revision(models.CollectionNotes))

	store.onNotes([]models.MeetingNote{}, 0)
	require.Len(t, store.GetState().Notes, 1)

	store.onNotes([]models.MeetingNote{{ID: "1", Content: "çiçekçi"}, {ID: "2", Content: "pasta"}}, 2)
	assert.Len(t, store.GetState().Notes, 2)

	store.onNotes([]models.MeetingNote{}, 1)
	assert.Len(t, store.GetState().Notes, 2)
}

func TestAppStoreAppliesDeferredSnapshotAfterWrite(t *testing.T) {
	remote, _ := newTestRemoteStore(t, openTestDB(t))
	store := NewAppStore(remote, nil)

	store.mu.Lock()
	store.gates[models.CollectionNotes].pending++
	store.mu.Unlock()

	// Yazım sürerken gelen görüntü bekletilir.
	store.onNotes([]models.MeetingNote{{ID: "9", Content: "başka istemci"}}, 5)
	assert.Empty(t, store.GetState().Notes)

	store.mu.Lock()
	after := store.settle(models.CollectionNotes, 4, true)
	store.mu.Unlock()
	require.NotNil(t, after)
	after()
	require.Len(t, store.GetState().Notes, 1)
	assert.Equal(t, "9", store.GetState().Notes[0].ID)
}
