package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"chemstock/internal/config"
	"chemstock/internal/repository/filestore"
	"chemstock/internal/repository/mongodb"
	"chemstock/internal/repository/sheets"
	"chemstock/internal/scheduler"
	"chemstock/internal/server/handlers"
	"chemstock/internal/server/router"
	inventorysvc "chemstock/internal/service/inventory"
	reportingsvc "chemstock/internal/service/reporting"
	"chemstock/pkg/clients/notify"
	"chemstock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := newStore(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init state store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close state store", zap.Error(err))
		}
	}()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("spreadsheet id missing, sheets export disabled")
	}

	var notifier notify.Client
	if cfg.Alerts.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Alerts.WebhookURL)
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, notifications disabled")
	}

	inventorySvc := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))
	reportingSvc := reportingsvc.NewService(inventorySvc, sheetsRepo, notifier, cfg.Sheets.SummaryRange, baseLogger.Named("svc.reporting"))

	handler := handlers.New(inventorySvc, reportingSvc, notifier, baseLogger.Named("handlers.api"))
	engine := router.New(handler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, inventorySvc, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newStore(ctx context.Context, cfg *config.Config, baseLogger *zap.Logger) (inventorysvc.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		baseLogger.Info("using mongodb state store", zap.String("db", cfg.Store.Mongo.DBName))
		return mongodb.NewStore(ctx, cfg.Store.Mongo.URI, cfg.Store.Mongo.DBName, cfg.Store.DocumentKey)
	default:
		baseLogger.Info("using file state store", zap.String("path", cfg.Store.FilePath))
		return filestore.NewStore(cfg.Store.FilePath, baseLogger.Named("repo.filestore"))
	}
}
