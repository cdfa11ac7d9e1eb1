package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{"document_id", "key", "question", "score", "rationale", "quotes"}

// WriteCSV writes rows as CSV with a header line. Quotes are joined with
// newlines inside a single cell.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.DocumentID,
			row.Key,
			row.Question,
			strconv.Itoa(row.Score),
			row.Rationale,
			strings.Join(row.Quotes, "\n"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("write json rows: %w", err)
	}

	return nil
}
