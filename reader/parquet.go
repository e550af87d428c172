package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/hostdb/schema"
)

// maxFiles bounds how many files one glob pattern may expand to.
const maxFiles = 1000

// ParquetSource is a row store backed by one or more Parquet files. The
// files are read on every Snapshot, so a snapshot reflects the files as
// they are when it is taken.
type ParquetSource struct {
	reg     *schema.Registry
	table   *schema.Table
	pattern string
}

// NewParquetSource creates a store reading rows of table from path. path
// may be a glob pattern; matching files are read in lexical order.
func NewParquetSource(reg *schema.Registry, table *schema.Table, path string) *ParquetSource {
	return &ParquetSource{reg: reg, table: table, pattern: path}
}

// Table returns the row shape of the store.
func (s *ParquetSource) Table() *schema.Table { return s.table }

// Snapshot implements Source.
func (s *ParquetSource) Snapshot(ctx context.Context) ([]Row, error) {
	paths, err := expand(s.pattern)
	if err != nil {
		return nil, err
	}
	var rows []Row
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileRows, err := s.readFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

func expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{pattern}, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}
	sort.Strings(matches)
	return matches, nil
}

// column binds a table column to its leaf in a parquet file.
type column struct {
	schema.Column
	node parquet.Node
}

func (s *ParquetSource) readFile(ctx context.Context, path string) ([]Row, error) {
	f, pf, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cols, err := s.bind(pf.Schema())
	if err != nil {
		return nil, err
	}

	r := parquet.NewReader(pf)
	defer func() { _ = r.Close() }()

	var rows []Row
	for n := 0; ; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		raw := make(map[string]any)
		if err := r.Read(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rec, err := s.record(cols, raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (s *ParquetSource) bind(ps *parquet.Schema) ([]column, error) {
	cols := s.table.Columns()
	bound := make([]column, len(cols))
	for i, c := range cols {
		leaf, ok := ps.Lookup(c.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s is not in the file", schema.ErrUnknownColumn, s.table.Name(), c.Name)
		}
		if leaf.MaxRepetitionLevel > 0 {
			return nil, fmt.Errorf("column %s: repeated columns are not supported", c.Name)
		}
		bound[i] = column{Column: c, node: leaf.Node}
	}
	return bound, nil
}

func (s *ParquetSource) record(cols []column, raw map[string]any) (*Record, error) {
	values := make([]schema.Value, len(cols))
	for i, c := range cols {
		native, err := nativeValue(s.reg, c.node, raw[c.Name])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		if values[i], err = coerce(s.reg, c.Column, native); err != nil {
			return nil, err
		}
	}
	return &Record{table: s.table, values: values}, nil
}

// openFile opens a parquet file. The caller closes the returned *os.File.
func openFile(path string) (*os.File, *parquet.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	return f, pf, nil
}
