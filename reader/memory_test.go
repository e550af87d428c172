package reader

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/vegasq/hostdb/schema"
)

func accountTable(reg *schema.Registry) *schema.Table {
	return schema.MustTable("account",
		schema.Column{Name: "accounting", Type: reg.MustType(schema.TypeAccount)},
		schema.Column{Name: "balance", Type: reg.MustType(schema.TypeDecimal2)},
		schema.Column{Name: "created", Type: reg.MustType(schema.TypeTime)},
	)
}

func TestParseRecord(t *testing.T) {
	reg := schema.NewRegistry()
	table := accountTable(reg)

	rec, err := ParseRecord(reg, table, map[string]string{
		"accounting": "AOINDUSTRIES",
		"Balance":    "12.5",
	})
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}

	if got := rec.Columns(); !slices.Equal(got, []string{"accounting", "balance", "created"}) {
		t.Errorf("Columns() = %v", got)
	}
	if got := formatted(t, reg, rec, "balance"); got != "12.50" {
		t.Errorf("balance = %q, want 12.50", got)
	}
	if got := formatted(t, reg, rec, "created"); got != "NULL" {
		t.Errorf("created = %q, want null", got)
	}
	if _, err := rec.Get("missing"); !errors.Is(err, schema.ErrUnknownColumn) {
		t.Errorf("Get(missing) error = %v, want ErrUnknownColumn", err)
	}

	tests := []struct {
		name   string
		fields map[string]string
		want   error
	}{
		{"unknown column", map[string]string{"nope": "1"}, schema.ErrUnknownColumn},
		{"invalid value", map[string]string{"accounting": "lower"}, schema.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRecord(reg, table, tt.fields); !errors.Is(err, tt.want) {
				t.Errorf("ParseRecord() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewRecord(t *testing.T) {
	reg := schema.NewRegistry()
	table := accountTable(reg)

	acct := reg.MustValue(schema.TypeAccount, schema.Text("ACME"))
	balance := schema.Null(reg.MustType(schema.TypeDecimal2))
	created := schema.Null(reg.MustType(schema.TypeTime))

	if _, err := NewRecord(table, acct, balance, created); err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if _, err := NewRecord(table, acct, balance); err == nil {
		t.Error("NewRecord() with too few values succeeded")
	}
	wrong := schema.Null(reg.MustType(schema.TypeString))
	if _, err := NewRecord(table, wrong, balance, created); !errors.Is(err, schema.ErrTypeMismatch) {
		t.Errorf("NewRecord() error = %v, want ErrTypeMismatch", err)
	}
}

func TestMemorySource_Snapshot(t *testing.T) {
	reg := schema.NewRegistry()
	table := accountTable(reg)

	mk := func(name string) Row {
		rec, err := ParseRecord(reg, table, map[string]string{"accounting": name})
		if err != nil {
			t.Fatalf("ParseRecord() error = %v", err)
		}
		return rec
	}

	src := NewMemorySource(table, mk("FIRST"), mk("SECOND"))
	snap, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	src.Append(mk("THIRD"))
	if len(snap) != 2 {
		t.Errorf("earlier snapshot has %d rows after Append, want 2", len(snap))
	}
	if src.Len() != 3 {
		t.Errorf("Len() = %d, want 3", src.Len())
	}

	snap, _ = src.Snapshot(context.Background())
	var names []string
	for _, row := range snap {
		names = append(names, formatted(t, reg, row, "accounting"))
	}
	if !slices.Equal(names, []string{"FIRST", "SECOND", "THIRD"}) {
		t.Errorf("Snapshot() order = %v", names)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Snapshot(canceled) error = %v, want context.Canceled", err)
	}
}
