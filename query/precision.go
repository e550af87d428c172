package query

import "github.com/vegasq/hostdb/schema"

// scanPrecision returns the display precision of each column: the widest
// natural precision of its non-null values, or schema.Natural for columns
// whose type has no precision or that hold no values. The scan stops early
// once every precision column has reached its type's maximum; scanned is
// the number of rows looked at.
func scanPrecision(reg *schema.Registry, types []*schema.Type, rows [][]schema.Value) (precision []int, scanned int) {
	precision = make([]int, len(types))
	var pending []int
	bounded := true
	for i, t := range types {
		precision[i] = schema.Natural
		if t.SupportsPrecision() {
			pending = append(pending, i)
			if t.MaxPrecision() == schema.Unbounded {
				bounded = false
			}
		}
	}
	if len(pending) == 0 {
		return precision, 0
	}

	for _, row := range rows {
		scanned++
		for _, i := range pending {
			if row[i].IsNull() {
				continue
			}
			if p := reg.NaturalPrecision(row[i]); p > precision[i] {
				precision[i] = p
			}
		}
		if bounded && saturated(types, precision, pending) {
			break
		}
	}
	return precision, scanned
}

func saturated(types []*schema.Type, precision []int, pending []int) bool {
	for _, i := range pending {
		if precision[i] < types[i].MaxPrecision() {
			return false
		}
	}
	return true
}
