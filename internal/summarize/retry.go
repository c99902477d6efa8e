package summarize

import (
	"math/rand"
	"time"
)

// MaxAttempts is the retry budget for a single group summarization.
// Exhausting it is fatal for the whole build.
const MaxAttempts = 3

// Backoff returns the delay before retrying after attempt n (0-indexed),
// doubling each time with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
