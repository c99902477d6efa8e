package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/sumtree/internal/doctree"
)

// Summarizer produces one parent chunk from a group of same-level chunks.
type Summarizer interface {
	SummarizeGroup(ctx context.Context, group []*doctree.Chunk, id string) (*doctree.Chunk, error)
}

// GroupSummarizer compresses chunk groups through a Completer, retrying
// transient failures with exponential backoff. Any call error is treated
// as retryable; the service boundary gives us nothing better to go on.
type GroupSummarizer struct {
	completer   Completer
	log         *slog.Logger
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

func NewGroupSummarizer(c Completer, log *slog.Logger) *GroupSummarizer {
	return &GroupSummarizer{
		completer:   c,
		log:         log,
		maxAttempts: MaxAttempts,
		backoff:     Backoff,
	}
}

// SummarizeGroup compresses the group into a single chunk one level up.
// On success every member's ParentID is set to the new chunk's id before
// the chunk is returned; this is the only mutation of existing chunks.
func (s *GroupSummarizer) SummarizeGroup(ctx context.Context, group []*doctree.Chunk, id string) (*doctree.Chunk, error) {
	if len(group) == 0 {
		return nil, fmt.Errorf("empty chunk group")
	}

	prompt := BuildGroupPrompt(group)

	var summary string
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		summary, lastErr = s.completer.Complete(ctx, prompt)
		if lastErr == nil {
			break
		}
		s.log.Warn("summarization attempt failed",
			"attempt", attempt+1,
			"max_attempts", s.maxAttempts,
			"error", lastErr,
		)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("summarize group after %d attempts: %w", s.maxAttempts, lastErr)
	}

	childIDs := make([]string, len(group))
	for i, c := range group {
		childIDs[i] = c.ID
	}

	parent := &doctree.Chunk{
		ID:       id,
		Level:    group[0].Level + 1,
		Content:  summary,
		ChildIDs: childIDs,
		Position: group[0].Position,
	}
	if heading, level, ok := sharedHeading(group); ok {
		parent.Heading = heading
		parent.HeadingLevel = level
	}

	for _, c := range group {
		c.ParentID = id
	}
	return parent, nil
}

// sharedHeading reports the group's heading only if every member carries the
// identical one. A mixed group summarizes cross-topic material and stays
// heading-less.
func sharedHeading(group []*doctree.Chunk) (string, int, bool) {
	heading := group[0].Heading
	level := group[0].HeadingLevel
	if heading == "" {
		return "", 0, false
	}
	for _, c := range group[1:] {
		if c.Heading != heading || c.HeadingLevel != level {
			return "", 0, false
		}
	}
	return heading, level, true
}
