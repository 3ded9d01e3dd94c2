package repositories

import (
	"context"

	"dugun.site/configs/configslog"
	"dugun.site/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IGuestbookRepository misafir defteri koleksiyonu.
type IGuestbookRepository interface {
	ICollectionRepository[models.GuestbookEntry]
	CountApproved(ctx context.Context) (int64, error)
}

type GuestbookRepository struct {
	*CollectionRepository[models.GuestbookEntry]
	db *gorm.DB
}

func NewGuestbookRepository(db *gorm.DB) (IGuestbookRepository, error) {
	base, err := NewCollectionRepository[models.GuestbookEntry](db)
	if err != nil {
		return nil, err
	}
	return &GuestbookRepository{CollectionRepository: base, db: db}, nil
}

// CountApproved onaylı mesaj sayısını döndürür.
func (r *GuestbookRepository) CountApproved(ctx context.Context) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.GuestbookEntry{}).Where("is_approved = ?", true).Count(&count).Error
	if err != nil {
		configslog.Log.Error("GuestbookRepository.CountApproved: DB error", zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ IGuestbookRepository = (*GuestbookRepository)(nil)
