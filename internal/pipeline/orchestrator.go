package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/sumtree/internal/cache"
	"github.com/dgallion1/sumtree/internal/chunker"
	"github.com/dgallion1/sumtree/internal/doctree"
	"github.com/dgallion1/sumtree/internal/parser"
	"github.com/dgallion1/sumtree/internal/summarize"
)

// Config bundles the settings the orchestrator threads into each run.
type Config struct {
	Build BuildConfig
	Chunk chunker.Config
	Model string
}

// Orchestrator is the single entry point for processing a document:
// cache check, chunk, build, persist. Internal concurrency is hidden;
// Process is synchronous from the caller's point of view.
type Orchestrator struct {
	summarizer summarize.Summarizer
	cache      *cache.Store
	cfg        Config
	log        *slog.Logger
}

func NewOrchestrator(s summarize.Summarizer, store *cache.Store, cfg Config, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		summarizer: s,
		cache:      store,
		cfg:        cfg,
		log:        log,
	}
}

// Process builds (or reuses) the summary tree for the document at path.
// With force set, the cache check is skipped and the document is rebuilt.
func (o *Orchestrator) Process(ctx context.Context, path string, force bool) (*doctree.DocumentTree, error) {
	log := o.log.With("document", path)

	if !force {
		if tree := o.cache.Load(path); o.cache.Valid(tree, path) {
			log.Info("using cached summary tree", "chunks", len(tree.Chunks))
			return tree, nil
		}
	}

	filename := filepath.Base(path)
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	text, err := p.Parse(f, filename)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	level0 := chunker.Split(text, o.cfg.Chunk)
	log.Info("chunked document", "chunks", len(level0))

	builder := NewBuilder(o.summarizer, o.cfg.Build, log)
	all, err := builder.Build(ctx, level0)
	if err != nil {
		return nil, fmt.Errorf("build summary tree: %w", err)
	}

	hash, err := cache.HashFile(path)
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocumentTree{
		Metadata: doctree.Metadata{
			Filename:    filename,
			Hash:        hash,
			Model:       o.cfg.Model,
			ProcessedAt: time.Now().UTC(),
		},
		Chunks: all,
	}

	// The tree is complete at this point; a save failure costs a rebuild
	// next run, nothing more.
	if err := o.cache.Save(tree, path); err != nil {
		log.Warn("failed to save cache record", "error", err)
	}

	log.Info("processing complete", "total_chunks", len(all), "max_level", tree.MaxLevel())
	return tree, nil
}

// Cache exposes the store for read-only views (HTTP handlers, CLI viewer).
func (o *Orchestrator) Cache() *cache.Store {
	return o.cache
}
