package parser

import (
	"bufio"
	"io"
	"strings"
)

// TextParser handles plain text files. Output is the paragraph sequence
// joined with blank lines, with incidental single line breaks preserved
// inside each paragraph.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return strings.Join(paragraphs, "\n\n"), nil
}
