package migrations

import (
	"dugun.site/configs/configslog"
	"dugun.site/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateDocumentsTable tekil belgeler (site içeriği) tablosu.
func MigrateDocumentsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating documents table...")
	if err := db.AutoMigrate(&models.Document{}); err != nil {
		configslog.Log.Error("Failed to migrate documents table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Documents table migrated successfully")
	return nil
}
