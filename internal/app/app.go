package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ecocycle-dz/ecocycle/internal/config"
	"github.com/ecocycle-dz/ecocycle/internal/gazetteer"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver"
	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
	"github.com/ecocycle-dz/ecocycle/internal/market"
	"github.com/ecocycle-dz/ecocycle/internal/redis"
	redisstore "github.com/ecocycle-dz/ecocycle/internal/store/redis"
	"github.com/ecocycle-dz/ecocycle/internal/store/sqlite"
	"github.com/ecocycle-dz/ecocycle/internal/syncer"
	"github.com/ecocycle-dz/ecocycle/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	db          *sql.DB
	marketStore *market.Store
	sync        *syncer.Syncer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Snapshot persistence for the in-memory store
	snapStore := redisstore.NewStore(redisClient)

	// In-memory listing store, restored from the last snapshot
	marketStore := market.NewStore(snapStore, loggerClient)
	snap, err := snapStore.LoadSnapshot(context.Background())
	if err != nil {
		loggerClient.Warn("failed to load marketplace snapshot, starting empty",
			logger.Error(err))
	} else if snap != nil {
		marketStore.Restore(snap)
		loggerClient.Info("marketplace snapshot restored",
			logger.Int("listings", marketStore.Count()))
	}

	// Indexed durable store
	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		loggerClient.Errorf("Failed to open database at %s: %v", cfg.DatabasePath, err)
		os.Exit(1)
	}
	if err := sqlite.EnsureSchema(db); err != nil {
		loggerClient.Errorf("Failed to apply database schema: %v", err)
		os.Exit(1)
	}
	catalog := sqlite.NewStore(db, loggerClient)

	// Reconciliation between the two stores
	syncTrigger := make(chan struct{}, 1)
	sync := syncer.New(marketStore, catalog, loggerClient, cfg.SyncInterval, syncTrigger)

	// Place-name gazetteer for autocomplete
	places := loadPlaces(cfg, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		TimeNow:     time.Now,
		RedisClient: redisClient,
		Market:      marketStore,
		Catalog:     catalog,
		Syncer:      sync,
		Gazetteer:   places,
		SyncTrigger: syncTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		db:          db,
		marketStore: marketStore,
		sync:        sync,
	}
}

func loadPlaces(cfg *config.Config, log logger.Logger) *gazetteer.Gazetteer {
	if cfg.PlacesFile == "" {
		return gazetteer.New(nil)
	}

	places, err := gazetteer.NewLoader(cfg.PlacesFile).Load()
	if err != nil {
		log.Warn("failed to load places file, using built-in gazetteer",
			logger.String("file", cfg.PlacesFile),
			logger.Error(err))
		return gazetteer.New(nil)
	}

	log.Info("places file loaded",
		logger.String("file", cfg.PlacesFile),
		logger.Int("count", len(places)))
	return gazetteer.New(places)
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting EcoCycle v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("EcoCycle %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the store reconciler (initial sync + periodic/manual passes)
	if err := a.sync.Start(ctx); err != nil {
		return fmt.Errorf("failed to start syncer: %w", err)
	}
	a.logger.Info("syncer started",
		logger.Duration("interval", a.cfg.SyncInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.sync.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warnf("failed to close database: %v", err)
		} else {
			a.logger.Info("✅ Database closed cleanly")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ EcoCycle stopped cleanly")
	return nil
}
