package query

import (
	"slices"

	"github.com/vegasq/hostdb/reader"
	"github.com/vegasq/hostdb/schema"
)

type sortKey struct {
	expr Expression
	desc bool
	text string
}

// keyed pairs a row with its evaluated sort keys.
type keyed struct {
	row  reader.Row
	keys []schema.Value
}

// sortRows stably orders rows by keys. Each key is evaluated once per row.
func sortRows(reg *schema.Registry, rows []reader.Row, keys []sortKey) ([]reader.Row, error) {
	entries := make([]keyed, len(rows))
	for i, row := range rows {
		values := make([]schema.Value, len(keys))
		for k, key := range keys {
			v, err := key.expr.Eval(row)
			if err != nil {
				return nil, evalError(key.text, err)
			}
			values[k] = v
		}
		entries[i] = keyed{row: row, keys: values}
	}

	var cmpErr error
	slices.SortStableFunc(entries, func(a, b keyed) int {
		for k, key := range keys {
			c, err := reg.Compare(a.keys[k], b.keys[k])
			if err != nil {
				if cmpErr == nil {
					cmpErr = evalError(key.text, err)
				}
				return 0
			}
			if c != 0 {
				if key.desc {
					return -c
				}
				return c
			}
		}
		return 0
	})
	if cmpErr != nil {
		return nil, cmpErr
	}

	sorted := make([]reader.Row, len(entries))
	for i, e := range entries {
		sorted[i] = e.row
	}
	return sorted, nil
}
