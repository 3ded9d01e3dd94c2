package calendar

import (
	"net/url"
	"testing"

	"dugun.site/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleLinkSpansSixHours(t *testing.T) {
	link, err := GoogleLink(models.InitialContent())
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "20260704T150000Z/20260704T210000Z", q.Get("dates"))
	assert.Equal(t, "Louie & Florie's Wedding", q.Get("text"))
	assert.Contains(t, q.Get("location"), "Cebu City")
}

func TestGoogleLinkWithoutVenue(t *testing.T) {
	c := models.InitialContent()
	c.Venues = nil
	link, err := GoogleLink(c)
	require.NoError(t, err)
	u, _ := url.Parse(link)
	assert.Equal(t, "Venue TBD", u.Query().Get("location"))
}

func TestParseCountdownRejectsGarbage(t *testing.T) {
	_, err := ParseCountdown("soon")
	assert.Error(t, err)
}
