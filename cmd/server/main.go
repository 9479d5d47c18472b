package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/catalogpro/catalog/app/server"
	"github.com/catalogpro/catalog/config"
	"github.com/catalogpro/catalog/migrations"
	"github.com/catalogpro/catalog/models"
	"github.com/catalogpro/catalog/models/memory"
	"github.com/catalogpro/catalog/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Env == "development" {
		cfg.Print()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal("could not open store", zap.Error(err))
	}
	defer closeStore()

	srv := server.NewHTTPServer(server.Config{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
	}, server.NewRouter(store, log), log)

	go srv.Run(stop)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	srv.Close(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Store, log *zap.Logger) (server.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Info("using in-memory store")
		return memory.New(), func() {}, nil
	}

	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DSN, log); err != nil {
			return nil, nil, err
		}
	}

	db, err := models.OpenDatabase(ctx, models.DatabaseConfig{
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("connected to PostgreSQL")

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}
	return models.NewRepositories(db), closeFn, nil
}
