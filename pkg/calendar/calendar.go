// Package calendar katılan misafirler için takvime ekleme bağlantısı üretir.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"dugun.site/models"
	"dugun.site/pkg/mailto"
)

// Duration etkinliğin varsayılan süresi.
const Duration = 6 * time.Hour

const stampLayout = "20060102T150405Z"

// ParseCountdown countdownDate alanını okur. Saat dilimi yoksa UTC kabul edilir.
func ParseCountdown(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("geçersiz geri sayım tarihi: %q", s)
}

// GoogleLink Google Takvim şablon bağlantısı.
func GoogleLink(c models.SiteContent) (string, error) {
	start, err := ParseCountdown(c.CountdownDate)
	if err != nil {
		return "", err
	}
	end := start.Add(Duration)

	location := "Venue TBD"
	if len(c.Venues) > 0 {
		location = c.Venues[0].Name + ", " + c.Venues[0].Address
	}
	title := c.CoupleNames + "'s Wedding"
	details := "Join us for a beautiful celebration of love."

	return fmt.Sprintf("https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&dates=%s/%s&details=%s&location=%s",
		mailto.Encode(title), start.Format(stampLayout), end.Format(stampLayout),
		mailto.Encode(details), mailto.Encode(location)), nil
}
