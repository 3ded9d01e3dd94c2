package models

import "time"

// BaseModel koleksiyon satırlarına gömülen zaman damgalarını içerir.
// Kimlikler zaman damgası tabanlı string'ler olduğundan ID burada tutulmaz.
type BaseModel struct {
	CreatedAt time.Time `json:"-" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

// Collection uzak depodaki bir koleksiyonun ya da tekil belgenin adıdır.
type Collection string

const (
	CollectionContent   Collection = "content"
	CollectionRSVPs     Collection = "rsvps"
	CollectionNotes     Collection = "notes"
	CollectionGuestbook Collection = "guestbook"
)

// Valid bilinen koleksiyonlardan biri mi?
func (c Collection) Valid() bool {
	switch c {
	case CollectionContent, CollectionRSVPs, CollectionNotes, CollectionGuestbook:
		return true
	}
	return false
}

// ISOTime zamanı JavaScript toISOString biçiminde (milisaniye, UTC) yazar.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// ParseISOTime ISOTime ile yazılmış (veya RFC3339) bir zamanı okur; okunamazsa sıfır döner.
func ParseISOTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
