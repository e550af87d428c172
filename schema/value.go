package schema

import (
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Payload is the closed set of value representations. A nil Payload is null.
type Payload interface {
	payload()
}

// Bool holds boolean values.
type Bool bool

// Int holds every integer family value. Fixed-point decimals store the
// scaled integer, intervals store milliseconds and small identifiers store
// the 64 identifier bits.
type Int int64

// Float holds float and double values.
type Float float64

// BigDecimal holds arbitrary precision decimals with their scale.
type BigDecimal struct{ decimal.Decimal }

// Date holds a calendar day as days since 1970-01-01.
type Date int64

// Timestamp holds a point in time with nanosecond precision.
type Timestamp struct{ time.Time }

// Text holds the canonical form of every string-family value.
type Text string

// Addr holds an IPv4 or IPv6 address.
type Addr struct{ netip.Addr }

// UUID holds a 128 bit identifier.
type UUID uuid.UUID

// Key holds a SHA-256 digest.
type Key [32]byte

// Money holds an amount in one currency.
type Money struct {
	Currency currency.Unit
	Amount   decimal.Decimal
}

func (Bool) payload()       {}
func (Int) payload()        {}
func (Float) payload()      {}
func (BigDecimal) payload() {}
func (Date) payload()       {}
func (Timestamp) payload()  {}
func (Text) payload()       {}
func (Addr) payload()       {}
func (UUID) payload()       {}
func (Key) payload()        {}
func (Money) payload()      {}

// Value is a payload tagged with its scalar type.
type Value struct {
	typ *Type
	p   Payload
}

// Null returns the null value of t.
func Null(t *Type) Value {
	return Value{typ: t}
}

// Type returns the value's scalar type.
func (v Value) Type() *Type { return v.typ }

// Payload returns the value representation, nil for null.
func (v Value) Payload() Payload { return v.p }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.p == nil }
