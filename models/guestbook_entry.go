package models

// GuestbookEntry misafirlerin bıraktığı herkese açık mesajdır.
type GuestbookEntry struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(32)"`
	Name       string `json:"name" gorm:"type:varchar(255);not null"`
	Message    string `json:"message" gorm:"type:text;not null"`
	Date       string `json:"date" gorm:"type:varchar(40);index"`
	IsApproved bool   `json:"isApproved" gorm:"not null"`
	Reply      string `json:"reply,omitempty" gorm:"type:text"`
	ReplyDate  string `json:"replyDate,omitempty" gorm:"type:varchar(40)"`
	Reaction   string `json:"reaction,omitempty" gorm:"type:varchar(32)"`
	BaseModel
}
