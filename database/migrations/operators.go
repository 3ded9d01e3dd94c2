package migrations

import (
	"dugun.site/configs/configslog"
	"dugun.site/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateOperatorsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating operators table...")
	if err := db.AutoMigrate(&models.Operator{}); err != nil {
		configslog.Log.Error("Failed to migrate operators table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Operators table migrated successfully")
	return nil
}
