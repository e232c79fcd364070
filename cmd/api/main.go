package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/realtime"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucUser "github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !timezone.IsValid(cfg.Timezone) {
		zlog.Warn("unknown salon timezone, using default",
			zap.String("timezone", cfg.Timezone),
			zap.String("default", timezone.DefaultTimezone),
		)
	}
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// DATABASE
	// ======================================================
	db, err := dbpkg.Open(cfg.DBUrl, dbpkg.DefaultOptions(), zlog)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := dbpkg.RunMigrations(sqlDB, zlog); err != nil {
		return err
	}

	health := map[string]handlers.Pinger{
		"postgres": sqlDB.PingContext,
	}

	// ======================================================
	// REDIS (optional)
	// ======================================================
	var (
		blacklist auth.Blacklist = auth.NewMemoryBlacklist()
		relay     realtime.Relay
		deps      routes.Deps
	)
	if cfg.RedisAddr != "" {
		rc, err := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, zlog)
		if err != nil {
			return err
		}
		defer rc.Close()

		blacklist = rc
		relay = rc
		deps.Cache = rc
		health["redis"] = rc.Ping
	} else {
		zlog.Info("redis not configured, using in-process token blacklist")
	}

	// ======================================================
	// AUDIT
	// ======================================================
	var store audit.Store
	switch cfg.AuditSink {
	case "mongo":
		ms, err := audit.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		defer func() { _ = ms.Close(context.Background()) }()
		store = ms
	case "postgres":
		store = audit.NewGormStore(db)
	}

	if store != nil {
		deps.AuditLog = audit.New(store)
		deps.Audit = audit.NewDispatcher(deps.AuditLog, zlog)
		defer deps.Audit.Close()
	}

	// ======================================================
	// MEDIA (optional)
	// ======================================================
	if cfg.StorageEnabled() {
		deps.Images = media.NewS3Storage(media.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	} else {
		zlog.Info("s3 not configured, image uploads disabled")
	}

	// ======================================================
	// REALTIME
	// ======================================================
	hub := realtime.NewHub(relay, zlog)
	go hub.Run(ctx)

	// ======================================================
	// REPOSITORIES
	// ======================================================
	appointments := infraRepo.NewAppointmentGormRepository(db)
	users := infraRepo.NewUserGormRepository(db)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	deps.Appointments = appointments
	deps.Reports = appointments
	deps.Slots = infraRepo.NewSlotGormRepository(db)
	deps.Catalog = infraRepo.NewCatalogGormRepository(db)
	deps.Users = users
	deps.Tokens = tokens
	deps.Blacklist = blacklist
	deps.Hub = hub
	deps.Location = loc
	deps.CatalogTTL = cfg.CatalogTTL
	deps.AuthRatePerMinute = cfg.AuthRatePerMinute
	deps.CORSOrigins = cfg.CORSOrigins
	deps.Health = health
	deps.Log = zlog

	if cfg.DefaultAdminEmail != "" {
		seeder := ucUser.NewAuth(users, tokens, blacklist, deps.Audit, zlog)
		if err := seeder.SeedAdmin(ctx, cfg.DefaultAdminName, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
			return err
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogFormat != "console" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
