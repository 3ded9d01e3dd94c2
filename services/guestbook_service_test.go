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

func TestGuestbookSubmitIsApprovedAndValidated(t *testing.T) {
	store := newMemStore()
	clk := clock.NewFake(time.Time{})
	svc := NewGuestbookService(store, idgen.New(clk.Now), clk.Now)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "", "merhaba")
	assert.ErrorIs(t, err, ErrGuestbookNameRequired)
	_, err = svc.Submit(ctx, "Ada", "  ")
	assert.ErrorIs(t, err, ErrGuestbookMessageRequired)

	entry, err := svc.Submit(ctx, "Ada", "Congratulations!")
	require.NoError(t, err)
	assert.True(t, entry.IsApproved)
	assert.Equal(t, "2026-01-01T12:00:00.000Z", entry.Date)
	require.Len(t, store.GetState().Guestbook, 1)
}

func TestGuestbookApprovedListNewestFirst(t *testing.T) {
	store := newMemStore()
	store.state.Guestbook = []models.GuestbookEntry{
		{ID: "1", Name: "A", Date: "2026-01-01T00:00:00.000Z", IsApproved: true},
		{ID: "2", Name: "B", Date: "2026-03-01T00:00:00.000Z", IsApproved: false},
		{ID: "3", Name: "C", Date: "2026-02-01T00:00:00.000Z", IsApproved: true},
	}
	svc := NewGuestbookService(store, idgen.New(nil), nil)

	approved := svc.Approved()
	require.Len(t, approved, 2)
	assert.Equal(t, "3", approved[0].ID)
	assert.Equal(t, "1", approved[1].ID)

	all := svc.All()
	require.Len(t, all, 3)
	assert.Equal(t, "2", all[0].ID)
}

func TestGuestbookModeration(t *testing.T) {
	store := newMemStore()
	store.state.Guestbook = []models.GuestbookEntry{{ID: "1", Name: "A", Message: "hi", IsApproved: true}}
	clk := clock.NewFake(time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC))
	svc := NewGuestbookService(store, idgen.New(clk.Now), clk.Now)
	ctx := context.Background()

	e, err := svc.Reply(ctx, "1", " Thank you! ")
	require.NoError(t, err)
	assert.Equal(t, "Thank you!", e.Reply)
	assert.Equal(t, "2026-06-01T09:30:00.000Z", e.ReplyDate)

	e, err = svc.Reply(ctx, "1", "")
	require.NoError(t, err)
	assert.Empty(t, e.ReplyDate)

	e, err = svc.React(ctx, "1", "heart")
	require.NoError(t, err)
	assert.Equal(t, "heart", e.Reaction)

	e, err = svc.SetApproved(ctx, "1", false)
	require.NoError(t, err)
	assert.False(t, e.IsApproved)
	assert.Empty(t, svc.Approved())

	_, err = svc.Reply(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrGuestbookEntryNotFound)

	require.NoError(t, svc.Delete(ctx, "1"))
	assert.Empty(t, store.GetState().Guestbook)
}
