package services

import (
	"context"
	"encoding/json"
	"testing"

	"dugun.site/pkg/idgen"
	"dugun.site/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFieldWritesWholeDocument(t *testing.T) {
	store := newMemStore()
	editor := NewContentEditor(store, nil, idgen.New(nil))
	ctx := context.Background()

	content, err := editor.SetField(ctx, "dressCode", json.RawMessage(`"Black tie"`))
	require.NoError(t, err)
	assert.Equal(t, "Black tie", content.DressCode)
	assert.Equal(t, "Black tie", store.GetState().Content.DressCode)
	require.Len(t, store.actions(), 1)
	assert.IsType(t, UpdateContent{}, store.actions()[0])

	_, err = editor.SetField(ctx, "nope", json.RawMessage(`1`))
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = editor.SetField(ctx, "dressCode", json.RawMessage(`{`))
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
	_, err = editor.SetField(ctx, "venues", json.RawMessage(`"not a list"`))
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
}

func TestArrayItemEditing(t *testing.T) {
	store := newMemStore()
	editor := NewContentEditor(store, nil, idgen.New(nil))
	ctx := context.Background()
	before := len(store.GetState().Content.Menu)

	content, err := editor.AddArrayItem(ctx, "menu", json.RawMessage(`{"course":"Dessert","dish":"Tiramisu","description":""}`))
	require.NoError(t, err)
	require.Len(t, content.Menu, before+1)

	content, err = editor.UpdateArrayItem(ctx, "menu", before, "dish", json.RawMessage(`"Baklava"`))
	require.NoError(t, err)
	assert.Equal(t, "Baklava", content.Menu[before].Dish)
	assert.Equal(t, "Dessert", content.Menu[before].Course)

	content, err = editor.UpdateArrayItem(ctx, "galleryImages", 0, "", json.RawMessage(`"https://img.example/new.jpg"`))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/new.jpg", content.GalleryImages[0])

	_, err = editor.UpdateArrayItem(ctx, "menu", 99, "dish", json.RawMessage(`"x"`))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = editor.AddArrayItem(ctx, "dressCode", json.RawMessage(`"x"`))
	assert.ErrorIs(t, err, ErrNotArrayField)
}

func TestTwoPhaseDelete(t *testing.T) {
	store := newMemStore()
	editor := NewContentEditor(store, nil, idgen.New(nil))
	ctx := context.Background()
	venues := store.GetState().Content.Venues
	require.NotEmpty(t, venues)

	p, err := editor.RequestDelete("s1", "venues", 0, venues[0].Name)
	require.NoError(t, err)
	assert.Equal(t, DeletionPending, p.Status)
	assert.Equal(t, p, editor.Deletion("s1"))
	assert.Equal(t, DeletionIdle, editor.Deletion("s2").Status)

	_, err = editor.ConfirmDelete(ctx, "s1", "wrong")
	assert.ErrorIs(t, err, ErrDeletionTokenDenied)
	assert.Len(t, store.GetState().Content.Venues, len(venues))

	content, err := editor.ConfirmDelete(ctx, "s1", p.Token)
	require.NoError(t, err)
	assert.Len(t, content.Venues, len(venues)-1)
	assert.Equal(t, DeletionIdle, editor.Deletion("s1").Status)

	_, err = editor.ConfirmDelete(ctx, "s1", p.Token)
	assert.ErrorIs(t, err, ErrNoPendingDeletion)
}

func TestNewDeleteRequestReplacesPendingOne(t *testing.T) {
	store := newMemStore()
	editor := NewContentEditor(store, nil, idgen.New(nil))

	first, err := editor.RequestDelete("s1", "menu", 0, "first")
	require.NoError(t, err)
	second, err := editor.RequestDelete("s1", "menu", 1, "second")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = editor.ConfirmDelete(context.Background(), "s1", first.Token)
	assert.ErrorIs(t, err, ErrDeletionTokenDenied)

	editor.CancelDelete("s1")
	assert.Equal(t, DeletionIdle, editor.Deletion("s1").Status)

	_, err = editor.RequestDelete("s1", "menu", 99, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLogoutCancelsPendingDeletion(t *testing.T) {
	repo := repositories.NewOperatorRepository(openTestDB(t))
	auth := NewAuthService(repo, "admin@example.com", 1, 5)
	store := newMemStore()
	editor := NewContentEditor(store, auth, idgen.New(nil))
	defer editor.Close()

	_, err := editor.RequestDelete("s1", "menu", 0, "Starter")
	require.NoError(t, err)
	_, err = editor.RequestDelete("s2", "menu", 0, "Starter")
	require.NoError(t, err)

	auth.Logout("s1", "admin@example.com")
	assert.Equal(t, DeletionIdle, editor.Deletion("s1").Status)
	assert.Equal(t, DeletionPending, editor.Deletion("s2").Status)
}

func TestChecklistAndMusic(t *testing.T) {
	store := newMemStore()
	editor := NewContentEditor(store, nil, idgen.New(nil))
	ctx := context.Background()

	_, err := editor.AddChecklistItem(ctx, " ")
	assert.ErrorIs(t, err, ErrEmptyChecklistText)

	item, err := editor.AddChecklistItem(ctx, "Book the florist")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	content, err := editor.ToggleChecklistItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, content.Checklist[len(content.Checklist)-1].Completed)

	_, err = editor.RemoveChecklistItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = editor.ToggleChecklistItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrChecklistItemAbsent)

	content, err = editor.SetMusic(ctx, " https://music.example/song.mp3 ")
	require.NoError(t, err)
	assert.Equal(t, "https://music.example/song.mp3", content.MusicURL)
	content, err = editor.SetMusic(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, content.MusicURL)
}
