package repositories

import (
	"context"
	"errors"
	"time"

	"dugun.site/configs/configslog"
	"dugun.site/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IDocumentRepository tekil JSON belgeleri (örn. site içeriği) için arayüz.
type IDocumentRepository interface {
	Get(ctx context.Context, name string) (*models.Document, error)
	Put(ctx context.Context, name string, data []byte) error
}

// DocumentRepository IDocumentRepository arayüzünü uygular.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) IDocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Get belgeyi adıyla getirir; yoksa ErrNotFound döner.
func (r *DocumentRepository) Get(ctx context.Context, name string) (*models.Document, error) {
	var doc models.Document
	err := r.getDB(ctx).Where("name = ?", name).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("DocumentRepository.Get: DB error", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &doc, nil
}

// Put belgeyi bütün olarak değiştirir. Sürüm kontrolü yoktur, son yazan kazanır.
func (r *DocumentRepository) Put(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return errors.New("belge adı boş olamaz")
	}
	doc := models.Document{Name: name, Data: datatypes.JSON(data), UpdatedAt: time.Now().UTC()}
	return r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
}

var _ IDocumentRepository = (*DocumentRepository)(nil)
