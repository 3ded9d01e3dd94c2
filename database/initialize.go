package database

import (
	"errors"
	"fmt"

	"dugun.site/configs/configsenv"
	"dugun.site/configs/configslog"
	"dugun.site/database/migrations"
	"dugun.site/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Adımlar testlerde değiştirilebilsin diye değişken olarak tutulur.
var (
	runMigrations = RunMigrationsInOrder
	runSeeders    = CheckAndRunSeeders
)

// Initialize migrasyon ve seed adımlarını tek transaction içinde çalıştırır.
// Herhangi bir adım hata verirse transaction geri alınır ve hata döner.
func Initialize(db *gorm.DB, migrate bool, seed bool) (err error) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Error("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return fmt.Errorf("transaction başlatılamadı: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			rollback(tx)
			configslog.Log.Error("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
			err = fmt.Errorf("veritabanı başlatma panic: %v", r)
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if migrate {
		configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
		if err := runMigrations(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
			rollback(tx)
			return fmt.Errorf("migrasyon: %w", err)
		}
		configslog.SLog.Info("Migrasyonlar tamamlandı.")
	} else {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
	}

	if seed {
		configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
		if err := runSeeders(tx); err != nil {
			configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
			rollback(tx)
			return fmt.Errorf("seed: %w", err)
		}
		configslog.SLog.Info("Seeder'lar tamamlandı.")
	} else {
		configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
	}

	configslog.SLog.Info("İşlem commit ediliyor...")
	if err := tx.Commit().Error; err != nil {
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		rollback(tx)
		return fmt.Errorf("commit: %w", err)
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

func rollback(tx *gorm.DB) {
	configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alınıyor.")
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(err))
	}
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	configslog.SLog.Info(" -> Operator migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateOperatorsTable(db); err != nil {
		configslog.Log.Error("Operators tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Operator migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Document migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateDocumentsTable(db); err != nil {
		configslog.Log.Error("Documents tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Document migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Koleksiyon migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateCollectionTables(db); err != nil {
		configslog.Log.Error("Koleksiyon tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Koleksiyon migrasyonları tamamlandı.")

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	cfg := configsenv.Get()

	configslog.SLog.Info("Panel operatörü kontrol ediliyor/oluşturuluyor/güncelleniyor...")
	if err := seeders.SeedOperator(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		if !errors.Is(err, seeders.ErrAdminPasswordMissing) {
			configslog.Log.Error("Operatör seed işlemi başarısız", zap.Error(err))
			return err
		}
		configslog.SLog.Warn("ADMIN_PASSWORD boş, operatör seed adımı atlanıyor.")
	}

	configslog.SLog.Info(" -> İçerik seeder çalıştırılıyor...")
	if err := seeders.SeedContent(db); err != nil {
		configslog.Log.Error("İçerik belgesi seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> İçerik seeder tamamlandı.")

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
