package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/hostdb/schema"
)

// writeParquet writes rows to dir/name and returns the file path.
func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}

func formatted(t *testing.T, reg *schema.Registry, row Row, column string) string {
	t.Helper()
	v, err := row.Get(column)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", column, err)
	}
	s, ok := reg.Format(v, schema.Natural)
	if !ok {
		return "NULL"
	}
	return s
}
