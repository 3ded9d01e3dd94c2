package models

// MeetingNote çiftin kendi aralarında tuttuğu toplantı notudur. Düzenlenmez, sadece silinir.
type MeetingNote struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(32)"`
	Content string `json:"content" gorm:"type:text;not null"`
	Date    string `json:"date" gorm:"type:varchar(40)"`
	BaseModel
}
