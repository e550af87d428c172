package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/hostdb/query"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names accepted by New.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes a query result in the formatter's specific format
	Format(res *query.Result) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter for a format name. null is written for null
// cells by the formats that have no native null.
func New(format string, w io.Writer, null string) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewTextFormatter(w, null), nil
	case FormatTable:
		return NewTableFormatter(w, null), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatJSONL, "json":
		return NewJSONFormatter(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
