package repositories

import (
	"dugun.site/models"

	"gorm.io/gorm"
)

// IRSVPRepository LCV koleksiyonu için veritabanı işlemleri.
type IRSVPRepository interface {
	ICollectionRepository[models.RSVP]
}

// RSVPRepository IRSVPRepository arayüzünü uygular.
type RSVPRepository struct {
	*CollectionRepository[models.RSVP]
}

// NewRSVPRepository yeni bir RSVPRepository örneği oluşturur.
func NewRSVPRepository(db *gorm.DB) (IRSVPRepository, error) {
	base, err := NewCollectionRepository[models.RSVP](db)
	if err != nil {
		return nil, err
	}
	return &RSVPRepository{CollectionRepository: base}, nil
}

var _ IRSVPRepository = (*RSVPRepository)(nil)
