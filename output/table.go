package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/hostdb/query"
)

// TableFormatter outputs rows as a bordered table.
type TableFormatter struct {
	writer io.Writer
	null   string
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer, null string) *TableFormatter {
	return &TableFormatter{writer: w, null: null}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the result. Headers are written as-is.
func (t *TableFormatter) Format(res *query.Result) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(res.Columns)
	table.SetAutoWrapText(false)

	align := make([]int, len(res.Columns))
	for i, right := range res.AlignRight {
		align[i] = tablewriter.ALIGN_LEFT
		if right {
			align[i] = tablewriter.ALIGN_RIGHT
		}
	}
	table.SetColumnAlignment(align)

	table.AppendBulk(res.Strings(t.null))
	table.Render()
	return nil
}
