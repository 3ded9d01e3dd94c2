package services

import (
	"context"
	"testing"
	"time"

	"dugun.site/models"
	"dugun.site/pkg/clock"
	"dugun.site/pkg/idgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesAddPrependsAndListsNewestFirst(t *testing.T) {
	store := newMemStore()
	store.state.Notes = []models.MeetingNote{
		{ID: "900", Content: "eski"},
		{ID: "1000", Content: "orta"},
	}
	clk := clock.NewFake(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC))
	svc := NewNoteService(store, idgen.New(clk.Now), clk.Now)
	ctx := context.Background()

	_, err := svc.Add(ctx, "   ")
	assert.ErrorIs(t, err, ErrNoteEmpty)

	note, err := svc.Add(ctx, "Pastaneyi ara")
	require.NoError(t, err)
	assert.Equal(t, "2/3/2026", note.Date)
	assert.Equal(t, note.ID, store.GetState().Notes[0].ID)

	list := svc.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{note.ID, "1000", "900"}, []string{list[0].ID, list[1].ID, list[2].ID})

	require.NoError(t, svc.Delete(ctx, "1000"))
	assert.Len(t, svc.List(), 2)
}
