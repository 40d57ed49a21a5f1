// cmd/worker-manager/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"loan-workers/internal/common/camunda"
	"loan-workers/internal/common/config"
	"loan-workers/internal/common/database"
	"loan-workers/internal/common/logger"
	"loan-workers/internal/common/observability"
	"loan-workers/internal/eligibility"
	"loan-workers/internal/models"
	"loan-workers/internal/ocr"
	"loan-workers/internal/repository"
	"loan-workers/internal/video"
	"loan-workers/pkg/registry"

	edd "loan-workers/internal/workers/document/extract-document-data"
	vvf "loan-workers/internal/workers/document/verify-video-face"
	cla "loan-workers/internal/workers/loan/create-loan-application"
	ele "loan-workers/internal/workers/loan/evaluate-loan-eligibility"
	qld "loan-workers/internal/workers/loan/query-loan-data"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}

func main() {
	migrationsDir := flag.String("migrate", "", "apply *.sql files from this directory before starting workers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log, syncLog, err := logger.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer syncLog()

	log = log.WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
		"env":     cfg.App.Environment,
	})
	log.Info("Starting worker manager...", nil)

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		fatal(log, "observability init failed", err)
	}

	tracing, err := observability.NewTracing(cfg.App.Name, cfg.App.Version, cfg.Observability.Tracing)
	if err != nil {
		fatal(log, "tracing init failed", err)
	}

	ctx := context.Background()

	// --- Task registry ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		fatal(log, "task registry load failed", err)
	}
	log.Info("task registry loaded", map[string]interface{}{
		"path":      cfg.Registry.Path,
		"version":   reg.Version(),
		"taskTypes": reg.TaskTypes(),
	})

	// --- Zeebe client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.FromAppConfig(cfg.Camunda))
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		fatal(log, "zeebe client failed after retries", err)
	}
	log.Info("Zeebe client connected successfully", nil)

	// --- PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		fatal(log, "postgres failed after retries", err)
	}
	log.Info("PostgreSQL connected successfully", nil)

	if *migrationsDir != "" {
		applied, err := pg.Migrate(ctx, *migrationsDir)
		if err != nil {
			fatal(log, "migration failed", err)
		}
		log.Info("migrations applied", map[string]interface{}{"files": applied})
	}

	// --- Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		fatal(log, "redis failed after retries", err)
	}
	log.Info("Redis connected successfully", nil)

	// --- Domain services ---
	rules, err := eligibility.NewRules(
		cfg.Eligibility.MinMonthlyIncome,
		cfg.Eligibility.MaxLoanMultiplier,
		cfg.Eligibility.RequiredDocuments,
	)
	if err != nil {
		fatal(log, "invalid eligibility rules", err)
	}

	loans := repository.NewLoanStore(pg.DB)
	docs := repository.NewDocumentStore(pg.DB)
	videos := repository.NewVideoStore(pg.DB)
	lock := repository.NewApplicationLock(rdb.Client, cfg.Eligibility.LockPrefix, config.GetDuration(cfg.Eligibility.LockTTL))

	runner := ocr.NewExecRunner(log)
	engine := ocr.NewEngine(ocr.Config{
		Binary:     cfg.OCR.Binary,
		Language:   cfg.OCR.Language,
		PSM:        cfg.OCR.PSM,
		TempDir:    cfg.OCR.TempDir,
		Preprocess: cfg.OCR.Preprocess,
	}, runner, log)

	verifier := video.NewVerifier(
		video.NewFrameExtractor(cfg.Video.FFmpegBinary, cfg.Video.TempDir, runner),
		video.NewCommandDetector(cfg.Video.DetectorBinary, cfg.Video.DetectorArgs, runner),
		cfg.Video.AllowedFormats,
		log,
	)

	service := eligibility.NewService(eligibility.NewEvaluator(rules), loans, docs, lock, log)

	log.Info("eligibility rules loaded", map[string]interface{}{
		"minMonthlyIncome":  rules.MinMonthlyIncome,
		"maxLoanMultiplier": rules.MaxLoanMultiplier,
		"requiredDocuments": documentTypeNames(rules.RequiredDocuments),
	})

	// --- Workers ---
	handlers := map[string]camunda.JobHandler{
		edd.TaskType: edd.NewHandler(edd.LoadConfig(cfg), engine, docs, reg, log),
		vvf.TaskType: vvf.NewHandler(vvf.LoadConfig(cfg), verifier, videos, reg, log),
		cla.TaskType: cla.NewHandler(cla.LoadConfig(cfg), loans, reg, log),
		ele.TaskType: ele.NewHandler(ele.LoadConfig(cfg), service, reg, log),
		qld.TaskType: qld.NewHandler(qld.LoadConfig(cfg), pg.DB, reg, log),
	}

	workers := startWorkers(zeebe, cfg, reg, handlers, obs, log)
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr: cfg.Observability.HTTPAddress,
		Handler: newMux(map[string]database.Pinger{
			"postgres": pg,
			"redis":    rdb,
			"zeebe":    zeebe,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping HTTP server", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}
	if err := rdb.Close(); err != nil {
		log.Error("Error closing Redis client", map[string]interface{}{"error": err.Error()})
	}
	if err := pg.Close(); err != nil {
		log.Error("Error closing PostgreSQL client", map[string]interface{}{"error": err.Error()})
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		log.Error("Error flushing traces", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping meter provider", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

func startWorkers(
	zeebe *camunda.Client,
	cfg *config.Config,
	reg *registry.Registry,
	handlers map[string]camunda.JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) []*camunda.CamundaWorker {
	var workers []*camunda.CamundaWorker
	for _, taskType := range reg.TaskTypes() {
		handler, ok := handlers[taskType]
		if !ok {
			log.Warn("registered task type has no handler", map[string]interface{}{"taskType": taskType})
			continue
		}
		if !config.IsWorkerEnabled(cfg, taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		workers = append(workers, camunda.NewWorker(
			zeebe.GetClient(),
			cfg.App.Name,
			taskType,
			config.GetWorkerConfig(cfg, taskType),
			handler,
			obs,
			log,
		))
	}
	for taskType := range handlers {
		if _, ok := reg.Task(taskType); !ok {
			log.Warn("handler not listed in task registry, not started", map[string]interface{}{"taskType": taskType})
		}
	}
	return workers
}

func documentTypeNames(types []models.DocumentType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
