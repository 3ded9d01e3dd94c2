package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dugun.site/configs/configsdatabase"
	"dugun.site/configs/configsenv"
	"dugun.site/configs/configslog"
	"dugun.site/configs/configssession"
	"dugun.site/database"
	"dugun.site/pkg/blobstore"
	"dugun.site/pkg/clock"
	"dugun.site/pkg/idgen"
	"dugun.site/pkg/localcache"
	"dugun.site/pkg/realtime"
	"dugun.site/repositories"
	"dugun.site/routes"
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configsenv.Load()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	// Tablolar AutoMigrate ile güncel tutulur; seed'ler idempotent.
	if err := database.Initialize(db, true, true); err != nil {
		configslog.Log.Fatal("Veritabanı başlatılamadı", zap.Error(err))
	}

	rsvpRepo, err := repositories.NewRSVPRepository(db)
	if err != nil {
		configslog.Log.Fatal("RSVP repository kurulamadı", zap.Error(err))
	}
	noteRepo, err := repositories.NewMeetingNoteRepository(db)
	if err != nil {
		configslog.Log.Fatal("Not repository kurulamadı", zap.Error(err))
	}
	guestbookRepo, err := repositories.NewGuestbookRepository(db)
	if err != nil {
		configslog.Log.Fatal("Misafir defteri repository kurulamadı", zap.Error(err))
	}
	documentRepo := repositories.NewDocumentRepository(db)
	operatorRepo := repositories.NewOperatorRepository(db)

	hub := realtime.NewHub()
	remote := services.NewRemoteStore(rsvpRepo, noteRepo, guestbookRepo, documentRepo, hub)

	cache, err := localcache.Open(cfg.CacheDir)
	if err != nil {
		configslog.Log.Fatal("Yerel önbellek açılamadı", zap.String("dir", cfg.CacheDir), zap.Error(err))
	}
	defer func() {
		if err := cache.Close(); err != nil {
			configslog.Log.Warn("Yerel önbellek kapatılamadı", zap.Error(err))
		}
	}()

	sessions := configssession.SetupSession(localcache.NewSessionStorage(cache), cfg.SessionExpiry, !cfg.IsDevelopment())

	media, err := blobstore.New(cfg.MediaDir, cfg.MediaBucket, cfg.PublicBaseURL)
	if err != nil {
		configslog.Log.Fatal("Medya deposu açılamadı", zap.String("dir", cfg.MediaDir), zap.Error(err))
	}

	now := clock.System()
	ids := idgen.New(now)

	store := services.NewAppStore(remote, cache)
	auth := services.NewAuthService(operatorRepo, cfg.AdminEmail, cfg.LoginRPS, cfg.LoginBurst)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := store.Start(ctx); err != nil {
		configslog.Log.Fatal("Uygulama durumu başlatılamadı", zap.Error(err))
	}
	defer store.Stop()

	engine := html.New("./views", ".html")
	engine.Reload(cfg.IsDevelopment())

	app := fiber.New(fiber.Config{
		AppName:               "dugun.site",
		Views:                 engine,
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: !cfg.IsDevelopment(),
		ReadTimeout:           30 * time.Second,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		Store:     store,
		Remote:    remote,
		Auth:      auth,
		Sessions:  sessions,
		RSVPs:     services.NewRSVPService(store, ids, now, cfg.PublicBaseURL),
		Guests:    services.NewGuestService(store, now, cfg.PublicBaseURL),
		Guestbook: services.NewGuestbookService(store, ids, now),
		Notes:     services.NewNoteService(store, ids, now),
		Editor:    services.NewContentEditor(store, auth, ids),
		Gallery:   services.NewGalleryService(media, store),
		Media:     media,
		AccessLog: true,
	})

	go func() {
		configslog.SLog.Infof("Sunucu %s adresinde dinliyor", cfg.ListenAddr())
		if err := app.Listen(cfg.ListenAddr()); err != nil && !errors.Is(err, context.Canceled) {
			configslog.Log.Error("Sunucu durdu", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Sunucu kapatılıyor...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		configslog.Log.Error("Sunucu kapatılırken hata", zap.Error(err))
	}
}
