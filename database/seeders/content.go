package seeders

import (
	"context"
	"encoding/json"
	"errors"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedContent içerik belgesi yoksa başlangıç içeriğini yazar; varsa dokunmaz.
func SeedContent(db *gorm.DB) error {
	ctx := context.Background()
	repo := repositories.NewDocumentRepository(db)

	_, err := repo.Get(ctx, string(models.CollectionContent))
	if err == nil {
		configslog.SLog.Debug("İçerik belgesi zaten mevcut, seed atlanıyor.")
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		configslog.Log.Error("İçerik belgesi kontrol edilirken veritabanı hatası", zap.Error(err))
		return err
	}

	raw, err := json.Marshal(models.InitialContent())
	if err != nil {
		return err
	}
	if err := repo.Put(ctx, string(models.CollectionContent), raw); err != nil {
		return err
	}
	configslog.SLog.Info("Başlangıç içeriği yazıldı.")
	return nil
}
