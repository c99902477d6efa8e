package doctree

import (
	"fmt"
	"sort"
	"time"
)

// Chunk is one node in the summary tree: an original paragraph at level 0,
// or a generated summary of the chunks one level below.
type Chunk struct {
	ID           string   `json:"id"`
	Level        int      `json:"level"`
	Content      string   `json:"content"`
	ParentID     string   `json:"parent_id,omitempty"`
	ChildIDs     []string `json:"child_ids"`
	Position     int      `json:"position"`
	Heading      string   `json:"heading,omitempty"`
	HeadingLevel int      `json:"heading_level,omitempty"`
}

// Metadata identifies the source document and the build that produced a tree.
type Metadata struct {
	Filename    string    `json:"filename"`
	Hash        string    `json:"hash"`
	Model       string    `json:"model"`
	ProcessedAt time.Time `json:"processed_at"`
}

// DocumentTree is the full result of processing one document: metadata plus
// the flat chunk collection across every abstraction level.
type DocumentTree struct {
	Metadata Metadata `json:"metadata"`
	Chunks   []*Chunk `json:"chunks"`
}

// ChunkID formats the canonical id for the n-th chunk created during a build.
// The counter spans all levels, so ids never collide within a document.
func ChunkID(n int) string {
	return fmt.Sprintf("chunk_%d", n)
}

// Level returns the chunks at the given abstraction level in reading order.
func (t *DocumentTree) Level(level int) []*Chunk {
	var out []*Chunk
	for _, c := range t.Chunks {
		if c.Level == level {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// MaxLevel returns the highest abstraction level present in the tree.
func (t *DocumentTree) MaxLevel() int {
	max := 0
	for _, c := range t.Chunks {
		if c.Level > max {
			max = c.Level
		}
	}
	return max
}

// ByID indexes the flat chunk collection by chunk id.
func (t *DocumentTree) ByID() map[string]*Chunk {
	m := make(map[string]*Chunk, len(t.Chunks))
	for _, c := range t.Chunks {
		m[c.ID] = c
	}
	return m
}
