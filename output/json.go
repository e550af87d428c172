package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/vegasq/hostdb/query"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line). Keys keep
// the column order of the result and cells are JSON strings or null.
func (j *JSONFormatter) Format(res *query.Result) error {
	keys := make([][]byte, len(res.Columns))
	for i, name := range res.Columns {
		b, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[i] = b
	}

	bw := bufio.NewWriter(j.writer)
	for _, row := range res.Rows {
		bw.WriteByte('{')
		for i, cell := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.Write(keys[i])
			bw.WriteByte(':')
			if !cell.Valid {
				bw.WriteString("null")
				continue
			}
			b, err := json.Marshal(cell.String)
			if err != nil {
				return err
			}
			bw.Write(b)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}
