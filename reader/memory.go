package reader

import (
	"context"
	"slices"
	"sync"

	"github.com/vegasq/hostdb/schema"
)

// MemorySource is a row store held in memory. It is safe for concurrent use.
type MemorySource struct {
	table *schema.Table

	mu   sync.RWMutex
	rows []Row
}

// NewMemorySource creates a store for table holding rows in order.
func NewMemorySource(table *schema.Table, rows ...Row) *MemorySource {
	return &MemorySource{table: table, rows: slices.Clone(rows)}
}

// Table returns the row shape of the store.
func (s *MemorySource) Table() *schema.Table { return s.table }

// Append adds rows to the end of the store.
func (s *MemorySource) Append(rows ...Row) {
	s.mu.Lock()
	s.rows = append(s.rows, rows...)
	s.mu.Unlock()
}

// Len returns the number of stored rows.
func (s *MemorySource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Snapshot implements Source.
func (s *MemorySource) Snapshot(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rows), nil
}
