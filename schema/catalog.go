package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownTable is returned when a catalog has no table of a name.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownColumn is returned when a table has no column of a name.
	ErrUnknownColumn = errors.New("unknown column")
)

// Column is one typed column of a row shape.
type Column struct {
	Name string
	Type *Type
}

// Table is a row shape: an ordered list of uniquely named, typed columns.
type Table struct {
	name    string
	columns []Column
	exact   map[string]int
	folded  map[string]int
}

// NewTable builds a row shape.
func NewTable(name string, columns ...Column) (*Table, error) {
	if name == "" {
		return nil, errors.New("table name must not be empty")
	}
	t := &Table{
		name:    name,
		columns: slices.Clone(columns),
		exact:   make(map[string]int, len(columns)),
		folded:  make(map[string]int, len(columns)),
	}
	ambiguous := make(map[string]bool)
	for i, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("table %s: column %d has no name", name, i)
		}
		if c.Type == nil {
			return nil, fmt.Errorf("table %s: column %s has no type", name, c.Name)
		}
		if _, dup := t.exact[c.Name]; dup {
			return nil, fmt.Errorf("table %s: duplicate column %s", name, c.Name)
		}
		t.exact[c.Name] = i
		key := strings.ToLower(c.Name)
		if _, seen := t.folded[key]; seen {
			ambiguous[key] = true
		}
		t.folded[key] = i
	}
	for key := range ambiguous {
		delete(t.folded, key)
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(name string, columns ...Column) *Table {
	t, err := NewTable(name, columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of columns.
func (t *Table) Len() int { return len(t.columns) }

// Columns returns the columns in table order.
func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column finds a column by name. An exact match wins; otherwise a
// case-insensitive match is accepted when it is unambiguous.
func (t *Table) Column(name string) (Column, int, error) {
	i, ok := t.exact[name]
	if !ok {
		i, ok = t.folded[strings.ToLower(name)]
	}
	if !ok {
		return Column{}, -1, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.name, name)
	}
	return t.columns[i], i, nil
}

// Catalog is the immutable set of row shapes known to a registry. The
// per-table column index is computed once here instead of on first use.
type Catalog struct {
	registry       *Registry
	tables         []*Table
	byName         map[string]*Table
	columnsByTable map[string][]string
}

// NewCatalog validates tables against reg and indexes them by name.
func NewCatalog(reg *Registry, tables ...*Table) (*Catalog, error) {
	c := &Catalog{
		registry:       reg,
		byName:         make(map[string]*Table, len(tables)),
		columnsByTable: make(map[string][]string, len(tables)),
	}
	for _, t := range tables {
		key := strings.ToLower(t.name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate table %s", t.name)
		}
		for _, col := range t.columns {
			if _, err := reg.lookup(col.Type); err != nil {
				return nil, fmt.Errorf("table %s column %s: %w", t.name, col.Name, err)
			}
		}
		c.tables = append(c.tables, t)
		c.byName[key] = t
		c.columnsByTable[key] = t.ColumnNames()
	}
	return c, nil
}

// Registry returns the registry the catalog was validated against.
func (c *Catalog) Registry() *Registry { return c.registry }

// Tables returns the tables in registration order.
func (c *Catalog) Tables() []*Table { return slices.Clone(c.tables) }

// Table finds a table by name, ignoring case.
func (c *Catalog) Table(name string) (*Table, error) {
	t, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return t, nil
}

// Columns returns the column names of a table in table order.
func (c *Catalog) Columns(table string) ([]string, error) {
	cols, ok := c.columnsByTable[strings.ToLower(table)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return slices.Clone(cols), nil
}
