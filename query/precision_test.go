package query

import (
	"testing"

	"github.com/vegasq/hostdb/schema"
)

func TestScanPrecision(t *testing.T) {
	reg := schema.NewRegistry()
	timeType := reg.MustType(schema.TypeTime)
	intType := reg.MustType(schema.TypeInt)

	ts := func(text string) schema.Value {
		v, err := reg.Parse(timeType, text)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", text, err)
		}
		return v
	}
	n := reg.MustValue(schema.TypeInt, schema.Int(1))

	tests := []struct {
		name    string
		types   []*schema.Type
		rows    [][]schema.Value
		want    []int
		scanned int
	}{
		{
			name:  "no precision columns skips the scan",
			types: []*schema.Type{intType},
			rows:  [][]schema.Value{{n}, {n}},
			want:  []int{schema.Natural},
		},
		{
			name:    "no rows",
			types:   []*schema.Type{timeType},
			want:    []int{schema.Natural},
			scanned: 0,
		},
		{
			name:    "nulls are ignored",
			types:   []*schema.Type{timeType, intType},
			rows:    [][]schema.Value{{schema.Null(timeType), n}, {ts("2024-01-01 00:00:00.001"), n}},
			want:    []int{schema.PrecisionMilliseconds, schema.Natural},
			scanned: 2,
		},
		{
			name:  "stops once the maximum is reached",
			types: []*schema.Type{timeType},
			rows: [][]schema.Value{
				{ts("2024-01-01 00:00:00")},
				{ts("2024-01-01 00:00:00.000000001")},
				{ts("2024-01-01 00:00:00.5")},
				{ts("2024-01-01 00:00:01")},
			},
			want:    []int{schema.PrecisionNanoseconds},
			scanned: 2,
		},
		{
			name:  "every column must reach its maximum",
			types: []*schema.Type{timeType, timeType},
			rows: [][]schema.Value{
				{ts("2024-01-01 00:00:00.000000001"), ts("2024-01-01 00:00:00")},
				{ts("2024-01-01 00:00:00"), ts("2024-01-01 00:00:00.000001")},
				{ts("2024-01-01 00:00:00"), ts("2024-01-01 00:00:00")},
			},
			want:    []int{schema.PrecisionNanoseconds, schema.PrecisionMicroseconds},
			scanned: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, scanned := scanPrecision(reg, tt.types, tt.rows)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d precisions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("precision[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
			if scanned != tt.scanned {
				t.Errorf("scanned %d rows, want %d", scanned, tt.scanned)
			}
		})
	}
}
