package chunker

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/sumtree/internal/doctree"
)

// Config controls chunking behavior.
type Config struct {
	MaxChunkChars int // Soft cap on accumulated paragraph length (fallback strategy).
	MaxParagraphs int // Max paragraphs folded into one chunk (fallback strategy).
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxChunkChars: 1500,
		MaxParagraphs: 5,
	}
}

// Split partitions document text into ordered level-0 chunks.
//
// The strategy is chosen by inspecting the content once: documents with
// markdown headings are segmented by heading boundaries, each paragraph
// inside a section becoming one chunk tagged with its enclosing heading.
// Documents without headings fall back to greedy paragraph accumulation so
// dense documents don't produce pathologically many tiny chunks.
func Split(content string, cfg Config) []*doctree.Chunk {
	if cfg.MaxChunkChars <= 0 {
		cfg.MaxChunkChars = 1500
	}
	if cfg.MaxParagraphs <= 0 {
		cfg.MaxParagraphs = 5
	}

	if strings.TrimSpace(content) == "" {
		return nil
	}

	sections, hasHeadings := segment(content)
	if hasHeadings {
		return headingChunks(sections)
	}
	return fallbackChunks(splitParagraphs(content), cfg)
}

// section is a run of paragraphs under one heading (or none).
type section struct {
	heading    string
	level      int
	paragraphs []string
}

// segment parses the content as markdown and collects paragraphs under their
// nearest enclosing heading. The boolean reports whether any heading exists,
// which decides the chunking strategy.
func segment(content string) ([]section, bool) {
	src := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var sections []section
	cur := section{}
	hasHeadings := false

	flush := func() {
		if cur.heading != "" || len(cur.paragraphs) > 0 {
			sections = append(sections, cur)
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			hasHeadings = true
			flush()
			cur = section{heading: string(node.Text(src)), level: node.Level}
		default:
			if t := blockText(n, src); t != "" {
				cur.paragraphs = append(cur.paragraphs, t)
			}
		}
	}
	flush()

	return sections, hasHeadings
}

// headingChunks emits one chunk per paragraph, carrying the section heading
// for display. Headings never affect tree topology, only labeling.
func headingChunks(sections []section) []*doctree.Chunk {
	var chunks []*doctree.Chunk
	for _, s := range sections {
		for _, para := range s.paragraphs {
			chunks = append(chunks, &doctree.Chunk{
				ID:           doctree.ChunkID(len(chunks)),
				Level:        0,
				Content:      para,
				ChildIDs:     []string{},
				Position:     len(chunks),
				Heading:      s.heading,
				HeadingLevel: s.level,
			})
		}
	}
	return chunks
}

// fallbackChunks greedily accumulates paragraphs into a chunk until the
// length or paragraph-count threshold is reached. The thresholds are soft
// caps on grouping: a single oversized paragraph is kept whole.
func fallbackChunks(paragraphs []string, cfg Config) []*doctree.Chunk {
	var chunks []*doctree.Chunk
	var buf []string
	size := 0

	flush := func() {
		if len(buf) == 0 {
			return
		}
		chunks = append(chunks, &doctree.Chunk{
			ID:       doctree.ChunkID(len(chunks)),
			Level:    0,
			Content:  strings.Join(buf, "\n\n"),
			ChildIDs: []string{},
			Position: len(chunks),
		})
		buf = nil
		size = 0
	}

	for _, para := range paragraphs {
		if len(buf) > 0 && (size+len(para) > cfg.MaxChunkChars || len(buf) >= cfg.MaxParagraphs) {
			flush()
		}
		buf = append(buf, para)
		size += len(para) + 2
	}
	flush()

	return chunks
}

// splitParagraphs splits on blank-line boundaries.
func splitParagraphs(content string) []string {
	parts := strings.Split(content, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// blockText extracts the raw source text of a goldmark block node. Leaf
// blocks carry their own source lines; container blocks (lists, quotes)
// only hold children.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			var buf strings.Builder
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
