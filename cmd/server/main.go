package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mytheresa/product-catalog/app/catalog"
	"github.com/mytheresa/product-catalog/app/categories"
	"github.com/mytheresa/product-catalog/app/suppliers"
	"github.com/mytheresa/product-catalog/app/tasks"
	"github.com/mytheresa/product-catalog/app/units"
	"github.com/mytheresa/product-catalog/config"
	"github.com/mytheresa/product-catalog/database"
	"github.com/mytheresa/product-catalog/logger"
	"github.com/mytheresa/product-catalog/metrics"
	"github.com/mytheresa/product-catalog/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(logger.Config{
		ServiceName: cfg.ServiceName,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, zl *zap.Logger) error {
	db, err := database.Open(ctx, cfg.DB, zl)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.Migrate(db, cfg.DB.Type); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, err := metrics.NewInstrumentedStore(models.NewCatalogRepository(db), reg)
	if err != nil {
		return err
	}
	runner := tasks.NewRunner(cfg.Workers, zl)

	catalogHandler := catalog.NewCatalogHandler(store, runner, afero.NewOsFs(), cfg.ImportDir, cfg.ExportDir, zl)
	categoryHandler := categories.NewCategoryHandler(store, runner, zl)
	supplierHandler := suppliers.NewSupplierHandler(store, runner, zl)
	unitHandler := units.NewUnitHandler(store, runner, zl)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("POST /catalog", catalogHandler.HandleCreate)
	mux.HandleFunc("POST /catalog/import", catalogHandler.HandleImport)
	mux.HandleFunc("POST /catalog/export", catalogHandler.HandleExport)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("GET /suppliers", supplierHandler.HandleGetAll)
	mux.HandleFunc("GET /units", unitHandler.HandleGetAll)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.HTTPAddr))
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

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
