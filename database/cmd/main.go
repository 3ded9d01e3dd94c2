package main

import (
	"flag"

	"dugun.site/configs/configsdatabase"
	"dugun.site/configs/configsenv"
	"dugun.site/configs/configslog"
	"dugun.site/database"

	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	configsenv.Load()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız", zap.Error(err))
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
