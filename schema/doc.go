// Package schema implements the typed-value engine behind the hosting
// platform's relational schema.
//
// A Registry is the closed catalog of scalar types. Every type knows how to
// parse itself from text, format itself back to text, order two of its values
// and which other types it may be cast into. Registries are built once and are
// safe for concurrent use.
//
// Basic usage:
//
//	reg := schema.NewRegistry(schema.WithLocation(time.UTC))
//
//	v, err := reg.Parse(reg.MustType(schema.TypeInt), "42")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l, err := reg.Cast(v, reg.MustType(schema.TypeLong))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, _ := reg.Format(l, schema.Natural)
//
// # Null handling
//
// Every type can hold null. Null orders before any non-null value, formats
// to the (string, false) pair and casts to null of the destination type.
//
// # Precision
//
// Only the time type is precision sensitive. It is rendered with 19, 23, 26
// or 29 characters (seconds, milliseconds, microseconds, nanoseconds). The
// Natural hint picks the shortest width that keeps the whole value.
package schema
