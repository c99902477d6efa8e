package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dgallion1/sumtree/internal/cache"
	"github.com/dgallion1/sumtree/internal/chunker"
	"github.com/dgallion1/sumtree/internal/config"
	"github.com/dgallion1/sumtree/internal/pipeline"
	"github.com/dgallion1/sumtree/internal/summarize"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sumtree",
	Short: "Progressive summarization of documents into a navigable tree",
	Long: `sumtree compresses a document through repeated summarization into a
multi-resolution tree: level 0 is the original text, each higher level a
more abstract rendering, down to a single top-level summary.

Results are cached by content hash, so reprocessing an unchanged document
is free.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(viewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration for a command run: config file (if
// given) under environment overrides.
func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load(), nil
}

// newOrchestrator wires the pipeline for CLI use with text logging on stderr.
func newOrchestrator(cfg config.Config) (*pipeline.Orchestrator, *slog.Logger) {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	client := summarize.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
	store := cache.New(cfg.CacheDir, log)
	summarizer := summarize.NewGroupSummarizer(client, log)

	return pipeline.NewOrchestrator(summarizer, store, pipeline.Config{
		Build: pipeline.BuildConfig{
			MaxLevel:        cfg.AbstractionLevels,
			GroupSize:       cfg.GroupSize,
			MaxConcurrent:   cfg.MaxConcurrent,
			PaceDelay:       pipeline.DefaultPaceDelay,
			GroupOnHeadings: cfg.GroupOnHeadings,
		},
		Chunk: chunker.Config{
			MaxChunkChars: cfg.MaxChunkChars,
			MaxParagraphs: cfg.MaxParagraphs,
		},
		Model: cfg.Model,
	}, log), log
}
