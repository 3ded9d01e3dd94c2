package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document tekil belgeleri (örn. "content") bütün halinde JSON olarak saklar.
type Document struct {
	Name      string         `gorm:"primaryKey;type:varchar(64)"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}
