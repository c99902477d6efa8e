package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/sumtree/internal/doctree"
	"github.com/dgallion1/sumtree/internal/summarize"
)

// DefaultMaxConcurrent bounds in-flight summarization calls per level.
const DefaultMaxConcurrent = 10

// DefaultPaceDelay is the per-slot pause after each completed call, a small
// brake against external rate limits.
const DefaultPaceDelay = 100 * time.Millisecond

// BuildConfig controls tree building.
type BuildConfig struct {
	MaxLevel        int           // Maximum abstraction level to build (>= 1).
	GroupSize       int           // Chunks per summarization group (>= 2).
	MaxConcurrent   int           // In-flight call bound per level.
	PaceDelay       time.Duration // Sleep per worker slot after each call.
	GroupOnHeadings bool          // Close groups early on heading changes.
}

func (c *BuildConfig) applyDefaults() {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
}

// Builder grows a summary tree level by level until the chunk count
// converges to one or the configured maximum level is reached.
type Builder struct {
	summarizer summarize.Summarizer
	cfg        BuildConfig
	log        *slog.Logger
}

func NewBuilder(s summarize.Summarizer, cfg BuildConfig, log *slog.Logger) *Builder {
	cfg.applyDefaults()
	return &Builder{summarizer: s, cfg: cfg, log: log}
}

// Build runs the level loop over the given level-0 chunks and returns the
// full flat collection across every level actually built. A failure at any
// level aborts the whole build; no partial tree is ever returned.
func (b *Builder) Build(ctx context.Context, level0 []*doctree.Chunk) ([]*doctree.Chunk, error) {
	all := make([]*doctree.Chunk, 0, 2*len(level0))
	all = append(all, level0...)
	current := level0

	// The id counter is seeded at the level-0 count and threaded through the
	// loop, so ids stay unique across levels and the builder stays re-entrant
	// for concurrent documents.
	nextID := len(level0)

	for level := 0; level < b.cfg.MaxLevel && len(current) > 1; level++ {
		var groups [][]*doctree.Chunk
		if b.cfg.GroupOnHeadings {
			groups = GroupChunksHeadingAware(current, b.cfg.GroupSize)
		} else {
			groups = GroupChunks(current, b.cfg.GroupSize)
		}

		b.log.Info("building level",
			"level", level+1,
			"source_chunks", len(current),
			"groups", len(groups),
		)

		next, err := b.buildLevel(ctx, groups, nextID)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", level+1, err)
		}

		all = append(all, next...)
		current = next
		nextID += len(next)

		b.log.Info("level complete", "level", level+1, "summaries", len(next))
	}

	return all, nil
}

// buildLevel dispatches one summarization call per group under the
// concurrency bound and waits for all of them. Ids and positions are fixed
// before dispatch, so completion order never leaks into the result.
func (b *Builder) buildLevel(ctx context.Context, groups [][]*doctree.Chunk, nextID int) ([]*doctree.Chunk, error) {
	type result struct {
		chunk *doctree.Chunk
		err   error
		idx   int
	}
	results := make(chan result, len(groups))
	sem := make(chan struct{}, b.cfg.MaxConcurrent)

	for i, group := range groups {
		id := doctree.ChunkID(nextID + i)
		sem <- struct{}{}
		go func(idx int, group []*doctree.Chunk, id string) {
			defer func() { <-sem }()
			c, err := b.summarizer.SummarizeGroup(ctx, group, id)
			if b.cfg.PaceDelay > 0 {
				time.Sleep(b.cfg.PaceDelay)
			}
			results <- result{chunk: c, err: err, idx: idx}
		}(i, group, id)
	}

	// A level is atomic: collect every in-flight result before deciding, so
	// parent backfills are consistent per completed group even on failure.
	chunks := make([]*doctree.Chunk, len(groups))
	var firstErr error
	for range groups {
		r := <-results
		if r.err != nil {
			b.log.Error("group summarization failed", "group", r.idx, "error", r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		chunks[r.idx] = r.chunk
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return chunks, nil
}
