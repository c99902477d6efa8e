package parser

import (
	"io"
	"strings"
)

// MarkdownParser handles Markdown files. The source is already in the form
// the chunker consumes, so parsing only normalizes line endings; heading
// structure is interpreted later by the chunker's goldmark probe.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	return strings.TrimSpace(text), nil
}
