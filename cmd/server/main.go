package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-challenge.backend/internal/config"
	"campus-challenge.backend/internal/infrastructure/datasources"
	"campus-challenge.backend/pkg/clock"
	"campus-challenge.backend/pkg/logger"
	"campus-challenge.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = datasources.Open
	migrateDB  = datasources.Migrate
	runServer  = serveHTTP
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis only backs rate limiting and idempotency; both fail open.
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			logger.Warn(ctx, "Redis unavailable, rate limiting and idempotency disabled", zap.Error(err))
		} else {
			logger.Info(ctx, "Redis initialized")
			defer func() { _ = redis.Close() }()
		}
	}

	if cfg.Admin.Password != "" || cfg.Admin.PasswordHash != "" {
		if !cfg.Admin.TokensEnabled() {
			logger.Warn(ctx, "ADMIN_JWT_SECRET not set, admin bearer tokens disabled")
		}
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := clock.LoadLocation(cfg.Registration.Timezone)
	clk := clock.New(loc)

	db, err := openDB(cfg.Database, clk.Now)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := migrateDB(db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	logger.Info(ctx, "Database ready", zap.Bool("sqlite", cfg.Database.IsSQLite()), zap.String("timezone", loc.String()))

	r := newRouter(cfg, buildRouteDeps(cfg, db, clk))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Registration backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(sigCtx, srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

// serveHTTP runs srv until ctx is cancelled, then drains in-flight requests.
func serveHTTP(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
