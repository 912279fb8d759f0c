package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"notes_backend/internal/app/config"
	"notes_backend/internal/app/di"
	"notes_backend/internal/app/router"
	authadapters "notes_backend/internal/feature/auth/adapters"
	authhandler "notes_backend/internal/feature/auth/transport/handler"
	authusecase "notes_backend/internal/feature/auth/usecase"
	notehandler "notes_backend/internal/feature/note/transport/handler"
	noteusecase "notes_backend/internal/feature/note/usecase"
	"notes_backend/internal/platform/db"
	"notes_backend/internal/platform/http/handler"
	jwtmw "notes_backend/internal/platform/jwt"
	"notes_backend/internal/platform/logging"
	infraredis "notes_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv(".env")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if cfg.RunMigrations {
		if err := di.Migrate(gdb); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(gdb)
	noteRepo := di.NewNoteRepository(gdb, rdb, cfg.CacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewManager(cfg.JWTSecret, cfg.JWTTTL))
	noteUC := noteusecase.NewNoteUsecase(noteRepo)

	checks := map[string]handler.Check{"database": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	r := router.NewRouter(router.Deps{
		Auth:         authhandler.NewAuthHandler(authUC),
		Notes:        notehandler.NewNoteHandler(noteUC),
		Verifier:     authUC,
		HealthChecks: checks,
		CORSOrigins:  cfg.CORSOrigins,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
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

	slog.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
