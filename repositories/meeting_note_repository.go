package repositories

import (
	"dugun.site/models"

	"gorm.io/gorm"
)

// IMeetingNoteRepository toplantı notları koleksiyonu.
type IMeetingNoteRepository interface {
	ICollectionRepository[models.MeetingNote]
}

type MeetingNoteRepository struct {
	*CollectionRepository[models.MeetingNote]
}

func NewMeetingNoteRepository(db *gorm.DB) (IMeetingNoteRepository, error) {
	base, err := NewCollectionRepository[models.MeetingNote](db)
	if err != nil {
		return nil, err
	}
	return &MeetingNoteRepository{CollectionRepository: base}, nil
}

var _ IMeetingNoteRepository = (*MeetingNoteRepository)(nil)
