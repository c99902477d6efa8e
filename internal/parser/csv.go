package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Rows are grouped into batches, each rendered
// as one labeled paragraph so downstream summaries stay readable.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	const batchSize = 20
	var blocks []string

	for i := 0; i < len(dataRows); i += batchSize {
		end := i + batchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		fmt.Fprintf(&text, "Rows %d-%d (%s):\n", i+2, end+1, strings.Join(headers, ", "))
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}
		blocks = append(blocks, strings.TrimSpace(text.String()))
	}

	return strings.Join(blocks, "\n\n"), nil
}
