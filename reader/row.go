package reader

import (
	"context"
	"fmt"

	"github.com/vegasq/hostdb/schema"
)

// Row is one record of a row store.
type Row interface {
	// Get returns the value of a column.
	Get(column string) (schema.Value, error)
	// Columns returns the column names in table order.
	Columns() []string
}

// Source is a row store. Each call to Snapshot returns the rows as they are
// at that moment; later changes to the store do not affect the returned slice.
type Source interface {
	Snapshot(ctx context.Context) ([]Row, error)
}

// Record is a Row backed by a row shape and one value per column.
type Record struct {
	table  *schema.Table
	values []schema.Value
}

// NewRecord builds a record. values must hold one value per column of table,
// in table order, each of the column's type.
func NewRecord(table *schema.Table, values ...schema.Value) (*Record, error) {
	cols := table.Columns()
	if len(values) != len(cols) {
		return nil, fmt.Errorf("table %s has %d columns, got %d values", table.Name(), len(cols), len(values))
	}
	for i, c := range cols {
		if values[i].Type() != c.Type {
			return nil, fmt.Errorf("%w: column %s.%s is %s, got %v",
				schema.ErrTypeMismatch, table.Name(), c.Name, c.Type, values[i].Type())
		}
	}
	return &Record{table: table, values: append([]schema.Value(nil), values...)}, nil
}

// ParseRecord builds a record from text. Columns missing from fields are null.
func ParseRecord(reg *schema.Registry, table *schema.Table, fields map[string]string) (*Record, error) {
	cols := table.Columns()
	values := make([]schema.Value, len(cols))
	for i, c := range cols {
		values[i] = schema.Null(c.Type)
	}
	for name, text := range fields {
		c, i, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		v, err := reg.Parse(c.Type, text)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		values[i] = v
	}
	return &Record{table: table, values: values}, nil
}

// Get implements Row.
func (r *Record) Get(column string) (schema.Value, error) {
	_, i, err := r.table.Column(column)
	if err != nil {
		return schema.Value{}, err
	}
	return r.values[i], nil
}

// Columns implements Row.
func (r *Record) Columns() []string { return r.table.ColumnNames() }

// Table returns the record's row shape.
func (r *Record) Table() *schema.Table { return r.table }
