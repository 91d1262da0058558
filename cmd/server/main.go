package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/config"
	"github.com/Sumanth789856/Get-Updated/database"
	"github.com/Sumanth789856/Get-Updated/logging"
	"github.com/Sumanth789856/Get-Updated/registry"
	"github.com/Sumanth789856/Get-Updated/routes"
	"github.com/Sumanth789856/Get-Updated/sessions"
	"github.com/Sumanth789856/Get-Updated/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := database.Connect(cfg, logger); err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	blobs, err := newBlobStore(cfg, logger)
	if err != nil {
		logger.Fatal("blob store", zap.Error(err))
	}
	revoked, err := newRevocationStore(cfg, logger)
	if err != nil {
		logger.Fatal("session store", zap.Error(err))
	}
	if revoked != nil {
		defer revoked.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, routes.Deps{
		Accounts:      registry.NewAccounts(database.DB, logger),
		Notes:         registry.NewNotes(database.DB, blobs, logger),
		Announcements: registry.NewAnnouncements(database.DB, logger),
		Revoked:       revoked,
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		Log:           logger,
	})

	addr := ":" + cfg.App.Port
	logger.Info("server listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newBlobStore(cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Blob.Backend {
	case "b2":
		logger.Info("blob store: backblaze b2", zap.String("bucket", cfg.Blob.B2.Bucket))
		return storage.NewB2(context.Background(), cfg.Blob.B2.AccountID, cfg.Blob.B2.AppKey, cfg.Blob.B2.Bucket)
	default:
		logger.Info("blob store: local", zap.String("dir", cfg.Blob.LocalDir))
		return storage.NewLocal(cfg.Blob.LocalDir)
	}
}

func newRevocationStore(cfg *config.Config, logger *zap.Logger) (sessions.RevocationStore, error) {
	switch cfg.Sessions.Backend {
	case "redis":
		logger.Info("session store: redis", zap.String("addr", cfg.Sessions.Redis.Addr))
		return sessions.NewRedisStore(context.Background(), cfg.Sessions.Redis)
	case "bolt":
		logger.Info("session store: bolt", zap.String("path", cfg.Sessions.BoltPath))
		return sessions.NewBoltStore(cfg.Sessions.BoltPath)
	default:
		// tokens stay valid until expiry; logout is client-side only
		logger.Warn("session store disabled; logout cannot revoke tokens")
		return nil, nil
	}
}
