package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dugun.site/models"
	"dugun.site/pkg/clock"
	"dugun.site/pkg/idgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRSVPService(t *testing.T) (*RSVPService, *memStore, *clock.Fake) {
	t.Helper()
	store := newMemStore()
	clk := clock.NewFake(time.Time{})
	return NewRSVPService(store, idgen.New(clk.Now), clk.Now, "https://louieandflorie.example"), store, clk
}

func TestSubmitValidation(t *testing.T) {
	svc, store, _ := newTestRSVPService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, RSVPInput{Name: "  ", Status: models.RSVPStatusAttending})
	assert.ErrorIs(t, err, ErrRSVPNameRequired)

	_, err = svc.Submit(ctx, RSVPInput{Name: "Ada", Status: "MAYBE"})
	assert.ErrorIs(t, err, ErrRSVPInvalidStatus)

	_, err = svc.Submit(ctx, RSVPInput{Name: "Ada", Status: models.RSVPStatusUndecided})
	assert.ErrorIs(t, err, ErrRSVPEmailRequired)

	assert.Empty(t, store.actions())
}

func TestSubmitCreatesRecordWithConfirmation(t *testing.T) {
	svc, store, clk := newTestRSVPService(t)

	res, err := svc.Submit(context.Background(), RSVPInput{
		Name: " Ada Lovelace ", Email: "ada@example.com", Status: models.RSVPStatusAttending,
		PlusOne: true, PlusOneName: "Charles",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", res.RSVP.Name)
	assert.Equal(t, models.ISOTime(clk.Now()), res.RSVP.Timestamp)
	assert.NotEmpty(t, res.RSVP.ID)
	assert.True(t, strings.HasPrefix(res.ConfirmationMailto, "mailto:ada@example.com?"))

	rsvps := store.GetState().RSVPs
	require.Len(t, rsvps, 1)
	assert.Equal(t, "Charles", rsvps[0].PlusOneName)
}

func TestSubmitSkipsConfirmationForUndecidedOrMissingEmail(t *testing.T) {
	svc, _, _ := newTestRSVPService(t)
	ctx := context.Background()

	res, err := svc.Submit(ctx, RSVPInput{Name: "Bo", Email: "bo@example.com", Status: models.RSVPStatusUndecided})
	require.NoError(t, err)
	assert.Empty(t, res.ConfirmationMailto)

	res, err = svc.Submit(ctx, RSVPInput{Name: "Cy", Status: models.RSVPStatusNotAttending, PlusOneName: "ignored"})
	require.NoError(t, err)
	assert.Empty(t, res.ConfirmationMailto)
	assert.Empty(t, res.RSVP.PlusOneName)
}

func TestSubmitSwallowsRemoteFailure(t *testing.T) {
	svc, store, _ := newTestRSVPService(t)
	store.failWith = errRemoteDown

	res, err := svc.Submit(context.Background(), RSVPInput{Name: "Ada", Status: models.RSVPStatusAttending})
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.RSVP.Name)
}

func TestPortalLookupIsCaseInsensitiveContains(t *testing.T) {
	svc, store, _ := newTestRSVPService(t)
	store.state.RSVPs = []models.RSVP{
		{ID: "1", Name: "Ada Lovelace", Status: models.RSVPStatusUndecided},
		{ID: "2", Name: "Adam Smith", Status: models.RSVPStatusAttending},
	}

	r, err := svc.Lookup("  LOVE ")
	require.NoError(t, err)
	assert.Equal(t, "1", r.ID)

	r, err = svc.Lookup("ada")
	require.NoError(t, err)
	assert.Equal(t, "1", r.ID, "first match wins")

	_, err = svc.Lookup("zed")
	assert.ErrorIs(t, err, ErrRSVPNotFound)

	_, err = svc.Lookup("   ")
	assert.ErrorIs(t, err, ErrRSVPLookupQueryMissing)
}

func TestPortalViewIncludesCalendarOnlyWhenAttending(t *testing.T) {
	svc, store, _ := newTestRSVPService(t)
	store.state.RSVPs = []models.RSVP{
		{ID: "1", Name: "Ada", Status: models.RSVPStatusUndecided},
		{ID: "2", Name: "Bo", Status: models.RSVPStatusAttending},
	}

	view, err := svc.Portal("ada")
	require.NoError(t, err)
	assert.True(t, view.CanRespond)
	assert.Empty(t, view.CalendarLink)
	assert.Equal(t, StatusNote(models.RSVPStatusUndecided), view.StatusNote)
	assert.NotEmpty(t, view.Venues)

	view, err = svc.Portal("bo")
	require.NoError(t, err)
	assert.False(t, view.CanRespond)
	assert.Contains(t, view.CalendarLink, "calendar.google.com")
	assert.Contains(t, view.StatusNote, "delighted")
}

func TestRespondOnlyLeavesUndecided(t *testing.T) {
	svc, store, clk := newTestRSVPService(t)
	prev := clk.Now().Add(time.Hour) // saat geri kalmış olsa bile damga artmalı
	store.state.RSVPs = []models.RSVP{
		{ID: "1", Name: "Ada", Status: models.RSVPStatusUndecided, Timestamp: models.ISOTime(prev)},
		{ID: "2", Name: "Bo", Status: models.RSVPStatusAttending},
	}
	ctx := context.Background()

	_, err := svc.Respond(ctx, "1", models.RSVPStatusUndecided)
	assert.ErrorIs(t, err, ErrRSVPInvalidTransition)

	_, err = svc.Respond(ctx, "2", models.RSVPStatusNotAttending)
	assert.ErrorIs(t, err, ErrRSVPTransitionDenied)

	_, err = svc.Respond(ctx, "missing", models.RSVPStatusAttending)
	assert.ErrorIs(t, err, ErrRSVPNotFound)

	updated, err := svc.Respond(ctx, "1", models.RSVPStatusAttending)
	require.NoError(t, err)
	assert.Equal(t, models.RSVPStatusAttending, updated.Status)
	assert.True(t, models.ParseISOTime(updated.Timestamp).After(prev))

	_, err = svc.Respond(ctx, "1", models.RSVPStatusNotAttending)
	assert.ErrorIs(t, err, ErrRSVPTransitionDenied)
}

func TestRespondSurfacesRemoteFailure(t *testing.T) {
	svc, store, _ := newTestRSVPService(t)
	store.state.RSVPs = []models.RSVP{{ID: "1", Name: "Ada", Status: models.RSVPStatusUndecided}}
	store.failWith = errRemoteDown

	_, err := svc.Respond(context.Background(), "1", models.RSVPStatusNotAttending)
	assert.ErrorIs(t, err, ErrRSVPUpdateFailed)
}

func TestAdminSaveBypassesTransitionRules(t *testing.T) {
	svc, store, _ := newTestRSVPService(t)
	store.state.RSVPs = []models.RSVP{{ID: "1", Name: "Ada", Status: models.RSVPStatusAttending, ReminderSent: true, Timestamp: "2026-01-01T00:00:00.000Z"}}
	ctx := context.Background()

	updated, err := svc.AdminSave(ctx, "1", RSVPInput{Name: "Ada", Status: models.RSVPStatusUndecided})
	require.NoError(t, err)
	assert.Equal(t, models.RSVPStatusUndecided, updated.Status)
	assert.True(t, updated.ReminderSent)

	created, err := svc.AdminSave(ctx, "", RSVPInput{Name: "Walk-in", Status: models.RSVPStatusAttending})
	require.NoError(t, err)
	assert.NotEqual(t, "1", created.ID)
	assert.Len(t, store.GetState().RSVPs, 2)

	_, err = svc.AdminSave(ctx, "nope", RSVPInput{Name: "X", Status: models.RSVPStatusAttending})
	assert.ErrorIs(t, err, ErrRSVPNotFound)
}

func TestRespondConcurrentCallsLeaveUndecidedOnce(t *testing.T) {
	svc, store, _ := newTestRSVPService(t)
	store.state.RSVPs = []models.RSVP{{ID: "1", Name: "Ada", Status: models.RSVPStatusUndecided}}

	const callers = 20
	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
		denied   atomic.Int32
	)
	for i := 0; i < callers; i++ {
		status := models.RSVPStatusAttending
		if i%2 == 1 {
			status = models.RSVPStatusNotAttending
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Respond(context.Background(), "1", status)
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, ErrRSVPTransitionDenied):
				denied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, int32(callers-1), denied.Load())
	assert.Len(t, store.actions(), 1)
}
