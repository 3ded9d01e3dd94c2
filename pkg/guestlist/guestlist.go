// Package guestlist LCV listesinin filtrelenmiş, sıralanmış ve dışa aktarılmış görünümlerini üretir.
// Fonksiyonlar girdiyi değiştirmez; her çağrı yeni bir dilim döndürür.
package guestlist

import (
	"sort"
	"strings"

	"dugun.site/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey desteklenen sıralama seçenekleri.
type SortKey string

const (
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
	SortRecent   SortKey = "recent"
	SortStatus   SortKey = "status"
)

// StatusAll durum filtresi uygulanmaz.
const StatusAll = "all"

// Filter arama ve durum filtresi.
type Filter struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

// Matches kaydın filtreye uyup uymadığını söyler.
func (f Filter) Matches(r models.RSVP) bool {
	if f.Status != "" && f.Status != StatusAll && string(r.Status) != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Email), term)
}

// Apply filtreye uyan kayıtları orijinal sırayla döndürür.
func Apply(rsvps []models.RSVP, f Filter) []models.RSVP {
	out := make([]models.RSVP, 0, len(rsvps))
	for _, r := range rsvps {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Sort sıralanmış bir kopya döndürür. Bilinmeyen anahtar sırayı değiştirmez.
func Sort(rsvps []models.RSVP, key SortKey) []models.RSVP {
	out := append([]models.RSVP(nil), rsvps...)
	switch key {
	case SortNameAsc, SortNameDesc:
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			c := col.CompareString(out[i].Name, out[j].Name)
			if key == SortNameDesc {
				return c > 0
			}
			return c < 0
		})
	case SortStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Status.Rank() < out[j].Status.Rank()
		})
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return models.ParseISOTime(out[i].Timestamp).After(models.ParseISOTime(out[j].Timestamp))
		})
	}
	return out
}

// View filtreleyip sıralar; panel listesi ve CSV bu görünümü kullanır.
func View(rsvps []models.RSVP, f Filter, key SortKey) []models.RSVP {
	return Sort(Apply(rsvps, f), key)
}

// Stats liste özet sayıları. Her istekte yeniden hesaplanır, saklanmaz.
type Stats struct {
	TotalGuests  int `json:"totalGuests"`
	Attending    int `json:"attending"`
	Declined     int `json:"declined"`
	Pending      int `json:"pending"`
	PlusOnes     int `json:"plusOnes"`
	TotalRecords int `json:"totalRecords"`
}

// ComputeStats toplam kişi = katılan kayıt sayısı + artı birli katılan kayıt sayısı.
func ComputeStats(rsvps []models.RSVP) Stats {
	var s Stats
	for _, r := range rsvps {
		s.TotalRecords++
		switch r.Status {
		case models.RSVPStatusAttending:
			s.Attending++
			if r.PlusOne {
				s.PlusOnes++
			}
		case models.RSVPStatusNotAttending:
			s.Declined++
		default:
			s.Pending++
		}
		s.TotalGuests += r.HeadCount()
	}
	return s
}
