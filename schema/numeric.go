package schema

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// intSpec describes an integer family type. Ranged types reject values
// outside [min, max] instead of wrapping them.
type intSpec struct {
	bits   int
	radix  int
	min    int64
	max    int64
	ranged bool
}

var intSpecs = map[TypeID]intSpec{
	TypeByte:      {bits: 8, radix: 10, min: math.MinInt8, max: math.MaxInt8},
	TypeShort:     {bits: 16, radix: 10, min: math.MinInt16, max: math.MaxInt16},
	TypeInt:       {bits: 32, radix: 10, min: math.MinInt32, max: math.MaxInt32},
	TypeLong:      {bits: 64, radix: 10, min: math.MinInt64, max: math.MaxInt64},
	TypePKey:      {bits: 32, radix: 10, min: math.MinInt32, max: math.MaxInt32},
	TypeFKey:      {bits: 32, radix: 10, min: math.MinInt32, max: math.MaxInt32},
	TypeOctalInt:  {bits: 32, radix: 8, min: math.MinInt32, max: math.MaxInt32},
	TypeOctalLong: {bits: 64, radix: 8, min: math.MinInt64, max: math.MaxInt64},
	TypeLinuxID:   {bits: 32, radix: 10, min: 0, max: 65535, ranged: true},
	TypeNetPort:   {bits: 32, radix: 10, min: 1, max: 65535, ranged: true},
}

// fit converts v into the integer type described by s. Plain types wrap
// like a two's complement narrowing conversion.
func (s intSpec) fit(v int64, name string) (Int, error) {
	if s.ranged {
		if v < s.min || v > s.max {
			return 0, outOfRange(v, name)
		}
		return Int(v), nil
	}
	switch s.bits {
	case 8:
		return Int(int8(v)), nil
	case 16:
		return Int(int16(v)), nil
	case 32:
		return Int(int32(v)), nil
	}
	return Int(v), nil
}

func booleanHandler() handler {
	return handler{
		maxPrecision: Unbounded,
		accepts:      is[Bool],
		parse: func(s string) (Payload, error) {
			switch strings.ToLower(s) {
			case "true", "t", "yes", "y":
				return Bool(true), nil
			case "false", "f", "no", "n":
				return Bool(false), nil
			}
			return nil, errors.New("expected true or false")
		},
		format: func(p Payload, _ int) string {
			return strconv.FormatBool(bool(p.(Bool)))
		},
		compare: func(a, b Payload) int {
			x, y := bool(a.(Bool)), bool(b.(Bool))
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		},
	}
}

func integerHandler(s intSpec) handler {
	return handler{
		alignRight:   true,
		maxPrecision: Unbounded,
		accepts:      is[Int],
		parse: func(text string) (Payload, error) {
			v, err := strconv.ParseInt(text, s.radix, s.bits)
			if err != nil {
				return nil, err
			}
			if v < s.min || v > s.max {
				return nil, fmt.Errorf("must be between %d and %d", s.min, s.max)
			}
			return Int(v), nil
		},
		format: func(p Payload, _ int) string {
			return strconv.FormatInt(int64(p.(Int)), s.radix)
		},
		compare: compareInts,
		normalize: func(p Payload) (Payload, error) {
			if v := int64(p.(Int)); v < s.min || v > s.max {
				return nil, fmt.Errorf("must be between %d and %d", s.min, s.max)
			}
			return p, nil
		},
	}
}

var pow10 = [...]int64{1, 10, 100, 1000}

// fixedHandler handles fixed-point decimals stored as value * 10^scale.
func fixedHandler(scale int32) handler {
	return handler{
		alignRight:   true,
		maxPrecision: Unbounded,
		accepts:      is[Int],
		parse: func(text string) (Payload, error) {
			d, err := decimal.NewFromString(text)
			if err != nil {
				return nil, err
			}
			scaled := d.Shift(scale)
			if !scaled.IsInteger() {
				return nil, fmt.Errorf("more than %d fraction digits", scale)
			}
			bi := scaled.BigInt()
			if !bi.IsInt64() {
				return nil, errors.New("value out of range")
			}
			return Int(bi.Int64()), nil
		},
		format: func(p Payload, _ int) string {
			return decimal.New(int64(p.(Int)), -scale).StringFixed(scale)
		},
		compare: compareInts,
	}
}

func floatHandler(bits int) handler {
	return handler{
		alignRight:   true,
		maxPrecision: Unbounded,
		accepts:      is[Float],
		parse: func(text string) (Payload, error) {
			f, err := strconv.ParseFloat(text, bits)
			if err != nil {
				return nil, err
			}
			return Float(f), nil
		},
		format: func(p Payload, _ int) string {
			return strconv.FormatFloat(float64(p.(Float)), 'f', -1, bits)
		},
		compare: func(a, b Payload) int {
			return cmp.Compare(a.(Float), b.(Float))
		},
	}
}

func bigDecimalHandler() handler {
	return handler{
		alignRight:   true,
		maxPrecision: Unbounded,
		accepts:      is[BigDecimal],
		parse: func(text string) (Payload, error) {
			d, err := decimal.NewFromString(text)
			if err != nil {
				return nil, err
			}
			return BigDecimal{d}, nil
		},
		format: func(p Payload, _ int) string {
			return formatDecimal(p.(BigDecimal).Decimal)
		},
		compare: func(a, b Payload) int {
			return a.(BigDecimal).Cmp(b.(BigDecimal).Decimal)
		},
	}
}

// formatDecimal renders d keeping its scale, so 1.50 stays 1.50.
func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
