package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/controller"
	"github.com/api-sage/transfer-engine/src/internal/adapter/http/router"
	"github.com/api-sage/transfer-engine/src/internal/adapter/notifier"
	"github.com/api-sage/transfer-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/transfer-engine/src/internal/adapter/repository/postgres"
	"github.com/api-sage/transfer-engine/src/internal/config"
	"github.com/api-sage/transfer-engine/src/internal/domain"
	"github.com/api-sage/transfer-engine/src/internal/locktable"
	"github.com/api-sage/transfer-engine/src/internal/logger"
	"github.com/api-sage/transfer-engine/src/internal/metrics"
	"github.com/api-sage/transfer-engine/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("server stopped with error", err, nil)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	repo, closeRepo, err := openAccountRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	accountService := services.NewAccountService(repo)
	if _, err := accountService.SeedAccounts(ctx, cfg.SeedAccounts); err != nil {
		return err
	}

	downstream, closeNotifier, err := openNotifier(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeNotifier()

	dispatcher := notifier.NewAsyncNotifier(downstream, cfg.NotificationBuffer)
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dispatcher.Close(drainCtx); err != nil {
			logger.Error("notification drain incomplete", err, nil)
		}
	}()

	locks := locktable.New(cfg.LockTableShards)
	transferService := services.NewTransferService(repo, dispatcher, locks, cfg.LockWaitTimeout)

	registry := metrics.NewRegistry()
	metrics.Register(registry, locks.Len)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: router.New(
			registry,
			controller.NewTransferController(transferService),
			controller.NewAccountController(accountService),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr":            cfg.HTTPAddr,
			"lockWaitTimeout": cfg.LockWaitTimeout.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("http server shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openAccountRepository(ctx context.Context, cfg config.Config) (domain.AccountRepository, func(), error) {
	if cfg.DatabaseDSN == "" {
		logger.Info("using in-memory account store", nil)
		return memory.NewAccountRepository(), func() {}, nil
	}

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { closeQuietly(db) }

	applied, err := postgres.RunMigrations(openCtx, db, os.DirFS(cfg.MigrationsDir))
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	logger.Info("using postgres account store", logger.Fields{"migrationsApplied": applied})
	return postgres.NewAccountRepository(db), closeDB, nil
}

func openNotifier(ctx context.Context, cfg config.Config) (domain.Notifier, func(), error) {
	if cfg.RedisAddr == "" {
		return notifier.NewLogNotifier(), func() {}, nil
	}

	client, err := notifier.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("using redis stream notifier", logger.Fields{
		"addr":   cfg.RedisAddr,
		"stream": cfg.NotificationStream,
	})
	return notifier.NewRedisNotifier(client, cfg.NotificationStream), func() { _ = client.Close() }, nil
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Error("close postgres connection", err, nil)
	}
}
