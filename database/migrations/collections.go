package migrations

import (
	"dugun.site/configs/configslog"
	"dugun.site/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateCollectionTables LCV, not ve misafir defteri tablolarını oluşturur/günceller.
func MigrateCollectionTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating rsvps, meeting_notes and guestbook_entries tables...")
	if err := db.AutoMigrate(&models.RSVP{}, &models.MeetingNote{}, &models.GuestbookEntry{}); err != nil {
		configslog.Log.Error("Failed to migrate collection tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Collection tables migrated successfully")
	return nil
}
