package query

import "database/sql"

// Result is the rendered outcome of a query. Rows hold one cell per column;
// an invalid cell is a null value.
type Result struct {
	Columns    []string
	AlignRight []bool
	Rows       [][]sql.NullString
}

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.Rows) }

// Strings returns the cells as plain strings, writing null as the given
// marker.
func (r *Result) Strings(null string) [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell.Valid {
				cells[j] = cell.String
			} else {
				cells[j] = null
			}
		}
		out[i] = cells
	}
	return out
}
