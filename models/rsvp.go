package models

// RSVPStatus olası LCV durumlarını tanımlar.
type RSVPStatus string

const (
	RSVPStatusAttending    RSVPStatus = "ATTENDING"     // Katılacak
	RSVPStatusNotAttending RSVPStatus = "NOT_ATTENDING" // Katılmayacak
	RSVPStatusUndecided    RSVPStatus = "UNDECIDED"     // Kararsız
)

// Valid durumun tanımlı değerlerden biri olup olmadığını kontrol eder.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusAttending, RSVPStatusNotAttending, RSVPStatusUndecided:
		return true
	}
	return false
}

// Rank durum sıralamasındaki yeri: ATTENDING, UNDECIDED, NOT_ATTENDING.
func (s RSVPStatus) Rank() int {
	switch s {
	case RSVPStatusAttending:
		return 0
	case RSVPStatusUndecided:
		return 1
	case RSVPStatusNotAttending:
		return 2
	}
	return 3
}

// Label yönetim panelinde gösterilen kısa etiket.
func (s RSVPStatus) Label() string {
	switch s {
	case RSVPStatusAttending:
		return "Accepted"
	case RSVPStatusNotAttending:
		return "Declined"
	}
	return "Pending"
}

// RSVP bir misafirin katılım yanıtıdır.
type RSVP struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(32)"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	Email        string     `json:"email,omitempty" gorm:"type:varchar(255);index"`
	Status       RSVPStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	PlusOne      bool       `json:"plusOne" gorm:"not null"`
	PlusOneName  string     `json:"plusOneName,omitempty" gorm:"type:varchar(255)"`
	FollowUpDate string     `json:"followUpDate,omitempty" gorm:"type:varchar(40)"`
	Notes        string     `json:"notes,omitempty" gorm:"type:text"`
	Dietary      string     `json:"dietary,omitempty" gorm:"type:text"`
	SongRequest  string     `json:"songRequest,omitempty" gorm:"type:varchar(255)"`
	Timestamp    string     `json:"timestamp" gorm:"type:varchar(40)"`
	ReminderSent bool       `json:"reminderSent,omitempty" gorm:"not null"`
	BaseModel
}

// HeadCount kaydın toplam kişi sayısına katkısı (katılmıyorsa 0).
func (r RSVP) HeadCount() int {
	if r.Status != RSVPStatusAttending {
		return 0
	}
	if r.PlusOne {
		return 2
	}
	return 1
}
