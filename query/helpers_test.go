package query

import (
	"context"
	"testing"

	"github.com/vegasq/hostdb/internal/logger"
	"github.com/vegasq/hostdb/reader"
	"github.com/vegasq/hostdb/schema"
)

// countingSource records how often the engine asked for a snapshot.
type countingSource struct {
	reader.Source
	calls int
}

func (s *countingSource) Snapshot(ctx context.Context) ([]reader.Row, error) {
	s.calls++
	return s.Source.Snapshot(ctx)
}

func newEngine(reg *schema.Registry, opts ...Option) *Engine {
	return NewEngine(reg, append([]Option{WithLogger(logger.Discard())}, opts...)...)
}

// memorySource builds a store of table from text rows.
func memorySource(t *testing.T, reg *schema.Registry, table *schema.Table, rows ...map[string]string) *countingSource {
	t.Helper()
	src := reader.NewMemorySource(table)
	for _, fields := range rows {
		rec, err := reader.ParseRecord(reg, table, fields)
		if err != nil {
			t.Fatalf("ParseRecord(%v) error = %v", fields, err)
		}
		src.Append(rec)
	}
	return &countingSource{Source: src}
}

func col(reg *schema.Registry, name string, id schema.TypeID) schema.Column {
	return schema.Column{Name: name, Type: reg.MustType(id)}
}

func cells(res *Result) [][]string {
	return res.Strings("NULL")
}
