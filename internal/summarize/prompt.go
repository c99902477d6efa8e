package summarize

import (
	"fmt"
	"strings"

	"github.com/dgallion1/sumtree/internal/doctree"
)

const summaryInstruction = `Summarize the following text sections into a single coherent summary.
Preserve key information and maintain logical flow.`

// BuildGroupPrompt assembles the prompt for compressing one chunk group.
// Each member is labeled with its reading-order position and, when present,
// its section heading, so the model keeps the document's context.
func BuildGroupPrompt(group []*doctree.Chunk) string {
	var sb strings.Builder
	sb.WriteString(summaryInstruction)
	sb.WriteString("\n\n")

	for i, c := range group {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if c.Heading != "" {
			fmt.Fprintf(&sb, "Section %d (%s):\n", i+1, c.Heading)
		} else {
			fmt.Fprintf(&sb, "Section %d:\n", i+1)
		}
		sb.WriteString(c.Content)
	}

	sb.WriteString("\n\nProvide only the summary, no preamble.")
	return sb.String()
}
