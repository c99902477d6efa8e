package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/sumtree/internal/api"
	"github.com/dgallion1/sumtree/internal/cache"
	"github.com/dgallion1/sumtree/internal/chunker"
	"github.com/dgallion1/sumtree/internal/config"
	"github.com/dgallion1/sumtree/internal/pipeline"
	"github.com/dgallion1/sumtree/internal/summarize"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var cfg config.Config
	if path := os.Getenv("SUMTREE_CONFIG"); path != "" {
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			log.Error("failed to load config file", "path", path, "error", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Load()
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	client := summarize.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
	store := cache.New(cfg.CacheDir, log)
	summarizer := summarize.NewGroupSummarizer(client, log)

	orch := pipeline.NewOrchestrator(summarizer, store, pipeline.Config{
		Build: pipeline.BuildConfig{
			MaxLevel:        cfg.AbstractionLevels,
			GroupSize:       cfg.GroupSize,
			MaxConcurrent:   cfg.MaxConcurrent,
			PaceDelay:       pipeline.DefaultPaceDelay,
			GroupOnHeadings: cfg.GroupOnHeadings,
		},
		Chunk: chunkConfig(cfg),
		Model: cfg.Model,
	}, log)

	srv := api.NewServer(orch, client, log, cfg)

	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		// Processing is synchronous; large documents hold the response open.
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting sumtree server", "port", cfg.Port, "model", cfg.Model)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func chunkConfig(cfg config.Config) chunker.Config {
	return chunker.Config{
		MaxChunkChars: cfg.MaxChunkChars,
		MaxParagraphs: cfg.MaxParagraphs,
	}
}
