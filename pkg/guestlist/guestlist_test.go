package guestlist

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"dugun.site/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGuests() []models.RSVP {
	return []models.RSVP{
		{ID: "1", Name: "zoe", Email: "zoe@example.com", Status: models.RSVPStatusNotAttending, Timestamp: "2026-01-01T10:00:00.000Z"},
		{ID: "2", Name: "Ángel", Email: "angel@Example.com", Status: models.RSVPStatusUndecided, Timestamp: "2026-01-03T10:00:00.000Z"},
		{ID: "3", Name: "Bea", Status: models.RSVPStatusAttending, PlusOne: true, Timestamp: "2026-01-02T10:00:00.000Z"},
		{ID: "4", Name: "Carl", Status: models.RSVPStatusAttending, Timestamp: "2026-01-04T10:00:00.000Z"},
	}
}

func ids(rsvps []models.RSVP) []string {
	out := make([]string, 0, len(rsvps))
	for _, r := range rsvps {
		out = append(out, r.ID)
	}
	return out
}

func TestComputeStatsHeadcount(t *testing.T) {
	s := ComputeStats(sampleGuests())
	assert.Equal(t, 3, s.TotalGuests)
	assert.Equal(t, 2, s.Attending)
	assert.Equal(t, 1, s.Declined)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.PlusOnes)
	assert.Equal(t, s.Attending+s.PlusOnes, s.TotalGuests)

	// Katılmayan birinin artı biri sayılmaz.
	s = ComputeStats([]models.RSVP{{Status: models.RSVPStatusNotAttending, PlusOne: true}})
	assert.Zero(t, s.TotalGuests)
	assert.Zero(t, s.PlusOnes)
}

func TestSortByStatusRank(t *testing.T) {
	in := []models.RSVP{
		{ID: "n", Status: models.RSVPStatusNotAttending},
		{ID: "u", Status: models.RSVPStatusUndecided},
		{ID: "a", Status: models.RSVPStatusAttending},
	}
	assert.Equal(t, []string{"a", "u", "n"}, ids(Sort(in, SortStatus)))
	assert.Equal(t, []string{"n", "u", "a"}, ids(in), "input must not be reordered")
}

func TestSortByNameAndRecency(t *testing.T) {
	g := sampleGuests()
	assert.Equal(t, []string{"2", "3", "4", "1"}, ids(Sort(g, SortNameAsc)))
	assert.Equal(t, []string{"1", "4", "3", "2"}, ids(Sort(g, SortNameDesc)))
	assert.Equal(t, []string{"4", "2", "3", "1"}, ids(Sort(g, SortRecent)))
	assert.Equal(t, ids(g), ids(Sort(g, "bogus")))
}

func TestFilterSearchIsCaseInsensitiveOnNameAndEmail(t *testing.T) {
	g := sampleGuests()

	assert.Equal(t, []string{"2"}, ids(Apply(g, Filter{Search: "EXAMPLE.COM", Status: string(models.RSVPStatusUndecided)})))
	assert.Equal(t, []string{"1", "2"}, ids(Apply(g, Filter{Search: "example"})))
	assert.Equal(t, []string{"3"}, ids(Apply(g, Filter{Search: "bE"})))

	attending := Apply(g, Filter{Status: string(models.RSVPStatusAttending)})
	assert.Equal(t, attending, Apply(g, Filter{Status: string(models.RSVPStatusAttending), Search: "  "}))
	assert.Equal(t, g, Apply(g, Filter{Status: StatusAll}))
}

func TestExportCSVRoundTripsThroughStandardParser(t *testing.T) {
	guests := []models.RSVP{
		{Name: `"O'Brien, Jr."`, Email: "ob@example.com", Status: models.RSVPStatusAttending, PlusOne: true, Notes: "line one", Timestamp: "2026-01-01T00:00:00.000Z"},
		{Name: "Plain", Status: models.RSVPStatusUndecided},
	}
	out := ExportCSV(guests)

	assert.Contains(t, string(out), `"""O'Brien, Jr."""`)
	assert.True(t, bytes.HasPrefix(out, []byte(`"Name","Email","Status","Plus One","Notes","Date"`+"\n")))

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Email", "Status", "Plus One", "Notes", "Date"}, records[0])
	assert.Equal(t, []string{`"O'Brien, Jr."`, "ob@example.com", "ATTENDING", "Yes", "line one", "2026-01-01T00:00:00.000Z"}, records[1])
	assert.Equal(t, []string{"Plain", "", "UNDECIDED", "No", "", ""}, records[2])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "guest-list-2026-07-04.csv", ExportFilename(time.Date(2026, 7, 4, 23, 0, 0, 0, time.UTC)))
}

func TestSelectionToggleAll(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	assert.True(t, s.Has("a"))
	s.Toggle("a")
	assert.False(t, s.Has("a"))

	visible := []string{"b", "a"}
	s.ToggleAll(visible)
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	s.ToggleAll(visible)
	assert.Zero(t, s.Len())

	s.Toggle("a")
	s.ToggleAll(visible)
	assert.Equal(t, 2, s.Len(), "partial selection becomes full selection")
	s.Clear()
	assert.Zero(t, s.Len())
}

func TestSelectionRemoveKeepsOthers(t *testing.T) {
	s := NewSelection()
	s.ToggleAll([]string{"1", "2", "3"})

	s.Remove("2", "missing")
	assert.Equal(t, []string{"1", "3"}, s.IDs())
	assert.False(t, s.Has("2"))
}
