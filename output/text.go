package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vegasq/hostdb/query"
)

// TextFormatter writes results as aligned columns:
//
//	    hostname     | port
//	-----------------+------
//	 www.example.com |   80
//	(1 row)
type TextFormatter struct {
	writer io.Writer
	null   string
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer, null string) *TextFormatter {
	return &TextFormatter{writer: w, null: null}
}

// SetOutput sets the output writer
func (f *TextFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format writes the result. Right-aligned columns are padded on the left.
func (f *TextFormatter) Format(res *query.Result) error {
	rows := res.Strings(f.null)

	widths := make([]int, len(res.Columns))
	for i, name := range res.Columns {
		widths[i] = runewidth.StringWidth(name)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	bw := bufio.NewWriter(f.writer)
	var sb strings.Builder
	line := func(cells []string, right func(int) bool) {
		sb.Reset()
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString(" |")
			}
			sb.WriteByte(' ')
			if right(i) {
				sb.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				sb.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		bw.WriteString(strings.TrimRight(sb.String(), " "))
		bw.WriteByte('\n')
	}

	// Headers are centered like psql does.
	headers := make([]string, len(res.Columns))
	for i, name := range res.Columns {
		pad := widths[i] - runewidth.StringWidth(name)
		headers[i] = strings.Repeat(" ", pad/2) + name + strings.Repeat(" ", pad-pad/2)
	}
	line(headers, func(int) bool { return false })

	for i, w := range widths {
		if i > 0 {
			bw.WriteByte('+')
		}
		bw.WriteString(strings.Repeat("-", w+2))
	}
	bw.WriteByte('\n')

	for _, row := range rows {
		line(row, func(i int) bool { return res.AlignRight[i] })
	}

	if len(rows) == 1 {
		bw.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(bw, "(%d rows)\n", len(rows))
	}
	return bw.Flush()
}
