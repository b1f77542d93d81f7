package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vytor/chessinsight/internal/api"
	"github.com/vytor/chessinsight/internal/config"
	"github.com/vytor/chessinsight/internal/db"
	"github.com/vytor/chessinsight/internal/jobs"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/repository/sqlite"
	"github.com/vytor/chessinsight/internal/services"
	promstats "github.com/vytor/chessinsight/internal/stats/prometheus"
	"github.com/vytor/chessinsight/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("ChessInsight Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("analysis_parallelism=%d", cfg.AnalysisParallelism)
	log.Debug("thresholds inaccuracy=%d mistake=%d blunder=%d", cfg.CpInaccuracy, cfg.CpMistake, cfg.CpBlunder)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := promstats.New(registry, promstats.WithLogger(log))

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize, metrics)
	queue := jobs.NewWorkerQueue(pool, nil)
	reportService := services.NewReportService(
		sqlite.NewReportRepository(database.DB),
		queue,
		cfg.AnalysisOptions(log.WithPrefix("analysis")),
		metrics,
	)
	queue.SetRunner(reportService)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(logger.NewContext(ctx, log.WithPrefix("worker")))

	if n, err := reportService.Recover(ctx); err != nil {
		log.Warn("failed to recover interrupted reports: %v", err)
	} else if n > 0 {
		log.Info("re-queued %d reports", n)
	}

	srv := &api.Server{
		Reports: reportService,
		Store:   database,
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Reports still running stay in processing and are recovered on the
	// next start.
	log.Debug("stopping worker pool")
	cancel()
	pool.Stop()

	log.Info("===========================================")
	log.Info("ChessInsight Server Stopped")
	log.Info("===========================================")
}
