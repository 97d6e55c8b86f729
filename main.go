package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"Durability/internal/calc/allowable"
	"Durability/internal/calc/batch"
	"Durability/internal/calc/damage"
	"Durability/internal/calc/importer"
	"Durability/internal/calc/report"
	"Durability/internal/calc/sn"
	"Durability/internal/calc/woehler"
	"Durability/internal/config"
	"Durability/internal/materials"
	"Durability/internal/middleware"
	"Durability/internal/respond"
)

var wg sync.WaitGroup

func HandleList(r *mux.Router, cfg *config.Config, catalog *materials.Catalog, logger *slog.Logger) {
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.Rate), cfg.Burst)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Logging(logger))
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	materialsH := &materials.Handler{Catalog: catalog}
	api.HandleFunc("/materials", materialsH.List).Methods("GET")
	api.HandleFunc("/materials/{name}", materialsH.Get).Methods("GET")

	woehlerH := &woehler.Handler{}
	damageH := &damage.Handler{Materials: catalog}
	importH := &importer.Handler{}
	batchH := &batch.Handler{Materials: catalog}
	allowableH := &allowable.Handler{Materials: catalog}
	reportH := &report.Handler{Materials: catalog}
	snH := &sn.Handler{}

	api.HandleFunc("/tools/woehler/load", woehlerH.Load).Methods("POST")

	api.HandleFunc("/tools/damage/calc", damageH.Calc).Methods("POST")
	api.HandleFunc("/tools/damage/chart", damageH.Chart).Methods("POST")
	api.HandleFunc("/tools/damage/xlsx", damageH.XLSX).Methods("POST")
	api.HandleFunc("/tools/damage/import", importH.Spectrum).Methods("POST")
	api.HandleFunc("/tools/damage/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/tools/damage/allowable", allowableH.Calc).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	api.HandleFunc("/tools/sn/upload", snH.Upload).Methods("POST")
	api.HandleFunc("/tools/sn/chart", snH.Chart).Methods("POST")
	api.HandleFunc("/tools/sn/download", snH.Download).Methods("POST")

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	catalog, err := materials.Open(cfg.Materials)
	if err != nil {
		logger.Error("materials", "err", err)
		os.Exit(1)
	}
	if _, err := os.Stat(cfg.Materials); err == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := catalog.Watch(ctx); err != nil {
				logger.Error("materials: watch stopped", "err", err)
			}
		}()
	}

	r := mux.NewRouter()
	HandleList(r, cfg, catalog, logger)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           middleware.CORS(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	wg.Wait()
	logger.Info("server stopped")
}
