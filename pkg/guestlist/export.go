package guestlist

import (
	"strings"
	"time"

	"dugun.site/models"
)

var csvHeader = []string{"Name", "Email", "Status", "Plus One", "Notes", "Date"}

// ExportCSV her alanı çift tırnak içine alır, gömülü tırnakları ikiler; satırlar "\n" ile ayrılır.
// encoding/csv sadece gerektiğinde tırnakladığı için kullanılmaz.
func ExportCSV(rsvps []models.RSVP) []byte {
	var b strings.Builder
	writeRow(&b, csvHeader...)
	for _, r := range rsvps {
		plusOne := "No"
		if r.PlusOne {
			plusOne = "Yes"
		}
		b.WriteByte('\n')
		writeRow(&b, r.Name, r.Email, string(r.Status), plusOne, r.Notes, r.Timestamp)
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

// ExportFilename guest-list-YYYY-MM-DD.csv
func ExportFilename(now time.Time) string {
	return "guest-list-" + now.UTC().Format("2006-01-02") + ".csv"
}
