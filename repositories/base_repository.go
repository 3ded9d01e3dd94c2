package repositories

import (
	"context"
	"errors"
	"fmt"

	"dugun.site/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound kayıt bulunamadığında repository katmanının döndürdüğü hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

type txContextKey struct{}

// WithTx bir transaction'ı context'e ekler; repository'ler bu context ile çağrıldığında tx'i kullanır.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// ICollectionRepository string ID'li kayıtlardan oluşan bir koleksiyon için ortak işlemler.
type ICollectionRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Upsert(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) error
}

// CollectionRepository ICollectionRepository arayüzünü gorm ile uygular.
// Kayıtların "id" birincil anahtarı ve gömülü BaseModel'i olmalıdır.
type CollectionRepository[T any] struct {
	db            *gorm.DB
	updateColumns []string
}

// NewCollectionRepository T modelinin şemasını okuyup repository oluşturur.
func NewCollectionRepository[T any](db *gorm.DB) (*CollectionRepository[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("model şeması okunamadı: %w", err)
	}
	cols := make([]string, 0, len(stmt.Schema.DBNames))
	for _, name := range stmt.Schema.DBNames {
		// created_at ilk eklemede kalır; liste sırası buna bağlı.
		if name == "id" || name == "created_at" {
			continue
		}
		cols = append(cols, name)
	}
	return &CollectionRepository[T]{db: db, updateColumns: cols}, nil
}

func (r *CollectionRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// List koleksiyonu ekleme sırasına göre döndürür.
func (r *CollectionRepository[T]) List(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	if err := r.getDB(ctx).Order("created_at asc").Order("id asc").Find(&records).Error; err != nil {
		configslog.Log.Error("CollectionRepository.List: DB error", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// FindByID tek bir kaydı getirir.
func (r *CollectionRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, errors.New("geçersiz ID")
	}
	var record T
	err := r.getDB(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CollectionRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &record, nil
}

// Upsert kaydı bütün alanlarıyla yazar: yoksa ekler, varsa tüm alanları günceller.
func (r *CollectionRepository[T]) Upsert(ctx context.Context, record *T) error {
	if record == nil {
		return errors.New("boş kayıt yazılamaz")
	}
	return r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(r.updateColumns),
	}).Create(record).Error
}

// Delete kaydı kalıcı olarak siler. Olmayan bir kaydı silmek hata değildir.
func (r *CollectionRepository[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("geçersiz ID")
	}
	return r.getDB(ctx).Where("id = ?", id).Delete(new(T)).Error
}

var _ ICollectionRepository[struct{}] = (*CollectionRepository[struct{}])(nil)
