// Command server starts the resume screener HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	openaicli "github.com/fairyhunter13/resume-screener/internal/adapter/ai/openai"
	httpserver "github.com/fairyhunter13/resume-screener/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-screener/internal/adapter/observability"
	"github.com/fairyhunter13/resume-screener/internal/adapter/repo/memory"
	"github.com/fairyhunter13/resume-screener/internal/adapter/repo/redisrepo"
	"github.com/fairyhunter13/resume-screener/internal/adapter/report/pdfreport"
	localext "github.com/fairyhunter13/resume-screener/internal/adapter/textextractor/local"
	"github.com/fairyhunter13/resume-screener/internal/app"
	"github.com/fairyhunter13/resume-screener/internal/catalog"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	// Domain skill catalog: built-in table unless a YAML override is provided.
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			slog.Error("catalog load failed", slog.String("path", cfg.CatalogFile), slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("catalog loaded from file", slog.String("path", cfg.CatalogFile), slog.Int("domains", len(cat.Domains())))
	}

	// Upload store: Redis when configured, process memory otherwise.
	var uploadRepo domain.UploadRepository
	var redisCheck func(ctx context.Context) error
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("redis url invalid", slog.Any("error", err))
			os.Exit(1)
		}
		client := redis.NewClient(opts)
		repo := redisrepo.NewUploadRepo(client, cfg.UploadTTL)
		uploadRepo = repo
		redisCheck = repo.Ping
		slog.Info("upload store: redis", slog.Duration("ttl", cfg.UploadTTL))
	} else {
		uploadRepo = memory.NewUploadRepo()
		slog.Info("upload store: in-memory")
	}

	// Optional AI suggester; absence simply disables the enhancement path.
	var suggester domain.Suggester
	if cfg.AIEnabled() {
		suggester = openaicli.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAITimeout, cfg.OpenAIMaxElapsed)
		slog.Info("ai suggester enabled", slog.String("model", cfg.OpenAIModel))
	}

	// Usecases
	analyzer := usecase.NewAnalyzeService(cat)
	uploads := usecase.NewUploadService(uploadRepo)
	questions := usecase.NewQuestionService()
	improver := usecase.NewImprovementService(analyzer, suggester)
	qa := usecase.NewQAService()
	batch := usecase.NewBatchService(analyzer, cfg.BatchConcurrency)

	srv := httpserver.NewServer(cfg, cat, uploads, analyzer, questions, improver, qa, batch, localext.New(), pdfreport.New(), redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
