package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/hostdb/query"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the header row followed by one record per result row.
// Null cells are written as empty fields.
func (c *CSVFormatter) Format(res *query.Result) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(res.Columns); err != nil {
		return err
	}

	record := make([]string, len(res.Columns))
	for _, row := range res.Rows {
		for i, cell := range row {
			record[i] = ""
			if cell.Valid {
				record[i] = sanitize(cell.String)
			}
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// sanitize guards against CSV injection by prefixing characters that
// could trigger formula execution in spreadsheet applications. Negative
// numbers are left alone.
func sanitize(val string) string {
	if val == "" {
		return val
	}
	switch val[0] {
	case '-':
		if isNumber(val[1:]) {
			return val
		}
	case '=', '+', '@', '\t', '\r', '\n', '|':
	default:
		return val
	}
	return "'" + strings.ReplaceAll(val, "'", "''")
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
		default:
			return false
		}
	}
	return digits > 0
}
