package schema

import (
	"errors"
	"math"
	"net/netip"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cast converts v into type to. The rules apply in order: identity, any type
// to string through Format, string to any parseable type through Parse, then
// the per-source cast table. Null casts to null wherever the edge exists.
func (r *Registry) Cast(v Value, to *Type) (Value, error) {
	src, err := r.lookup(v.typ)
	if err != nil {
		return Value{}, err
	}
	dst, err := r.lookup(to)
	if err != nil {
		return Value{}, err
	}
	if src == dst {
		return v, nil
	}
	if !r.canCast(src, dst) {
		return Value{}, &CastError{From: src.typ.name, To: to.name}
	}
	if v.p == nil {
		return Null(to), nil
	}
	switch {
	case to.id == TypeString:
		s, _ := r.Format(v, Unbounded)
		return Value{typ: to, p: Text(s)}, nil
	case src.typ.id == TypeString:
		out, err := r.Parse(to, string(v.p.(Text)))
		if err != nil {
			return Value{}, &CastError{From: src.typ.name, To: to.name, Err: err}
		}
		return out, nil
	}
	p, err := src.casts[to.id](v.p)
	if err != nil {
		return Value{}, &CastError{From: src.typ.name, To: to.name, Err: err}
	}
	return Value{typ: to, p: p}, nil
}

// CanCast reports whether the cast graph has an edge from one type to another.
func (r *Registry) CanCast(from, to *Type) bool {
	src, err := r.lookup(from)
	if err != nil {
		return false
	}
	dst, err := r.lookup(to)
	if err != nil {
		return false
	}
	return r.canCast(src, dst)
}

func (r *Registry) canCast(src, dst *entry) bool {
	switch {
	case src == dst, dst.typ.id == TypeString:
		return true
	case src.typ.id == TypeString:
		return dst.parse != nil
	}
	_, ok := src.casts[dst.typ.id]
	return ok
}

var plainInts = []TypeID{TypeByte, TypeShort, TypeInt, TypeLong, TypeOctalInt, TypeOctalLong}

const (
	minInt64Float = -9.223372036854775808e18
	maxInt64Float = 9.223372036854775808e18
)

// truncFloat truncates f toward zero.
func truncFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, outOfRange(f, "integer")
	}
	t := math.Trunc(f)
	if t < minInt64Float || t >= maxInt64Float {
		return 0, outOfRange(f, "integer")
	}
	return int64(t), nil
}

// truncDecimal truncates d toward zero.
func truncDecimal(d decimal.Decimal) (int64, error) {
	bi := d.Truncate(0).BigInt()
	if !bi.IsInt64() {
		return 0, outOfRange(d, "integer")
	}
	return bi.Int64(), nil
}

// scaleInt multiplies v by factor, failing instead of wrapping.
func scaleInt(v Int, factor int64, to string) (Payload, error) {
	if int64(v) > math.MaxInt64/factor || int64(v) < math.MinInt64/factor {
		return nil, outOfRange(int64(v), to)
	}
	return v * Int(factor), nil
}

// registerCasts fills the per-source cast tables. Narrowing conversions
// truncate; booleans convert to 0 for false and -1 for true.
func (r *Registry) registerCasts() {
	add := func(from, to TypeID, fn caster) {
		r.entries[from].casts[to] = fn
	}
	toInt := func(to TypeID, v int64) (Payload, error) {
		n, err := intSpecs[to].fit(v, r.entries[to].typ.name)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	boolNum := func(p Payload) int64 {
		if p.(Bool) {
			return -1
		}
		return 0
	}

	for from := range intSpecs {
		for to := range intSpecs {
			if from != to {
				add(from, to, func(p Payload) (Payload, error) {
					return toInt(to, int64(p.(Int)))
				})
			}
		}
		add(from, TypeBoolean, func(p Payload) (Payload, error) { return Bool(p.(Int) != 0), nil })
		add(from, TypeDecimal2, func(p Payload) (Payload, error) { return scaleInt(p.(Int), 100, "decimal_2") })
		add(from, TypeDecimal3, func(p Payload) (Payload, error) { return scaleInt(p.(Int), 1000, "decimal_3") })
		add(from, TypeFloat, func(p Payload) (Payload, error) { return Float(float32(p.(Int))), nil })
		add(from, TypeDouble, func(p Payload) (Payload, error) { return Float(p.(Int)), nil })
		add(from, TypeBigDecimal, func(p Payload) (Payload, error) {
			return BigDecimal{decimal.NewFromInt(int64(p.(Int)))}, nil
		})
	}
	for _, from := range []TypeID{TypeShort, TypeInt, TypeLong} {
		add(from, TypeDate, func(p Payload) (Payload, error) { return Date(p.(Int)), nil })
		add(from, TypeInterval, func(p Payload) (Payload, error) { return p, nil })
	}
	add(TypeLong, TypeTime, func(p Payload) (Payload, error) {
		return Timestamp{time.UnixMilli(int64(p.(Int)))}, nil
	})
	add(TypeLong, TypeSmallIdentifier, func(p Payload) (Payload, error) { return p, nil })
	add(TypeSmallIdentifier, TypeLong, func(p Payload) (Payload, error) { return p, nil })

	// Ranged integers are left out: -1 is never a valid port or linux id.
	for _, to := range append(plainInts[:len(plainInts):len(plainInts)], TypePKey, TypeFKey, TypeInterval) {
		add(TypeBoolean, to, func(p Payload) (Payload, error) { return Int(boolNum(p)), nil })
	}
	add(TypeBoolean, TypeDecimal2, func(p Payload) (Payload, error) { return Int(boolNum(p) * 100), nil })
	add(TypeBoolean, TypeDecimal3, func(p Payload) (Payload, error) { return Int(boolNum(p) * 1000), nil })
	add(TypeBoolean, TypeFloat, func(p Payload) (Payload, error) { return Float(boolNum(p)), nil })
	add(TypeBoolean, TypeDouble, func(p Payload) (Payload, error) { return Float(boolNum(p)), nil })
	add(TypeBoolean, TypeBigDecimal, func(p Payload) (Payload, error) {
		return BigDecimal{decimal.NewFromInt(boolNum(p))}, nil
	})

	for from, scale := range map[TypeID]int32{TypeDecimal2: 2, TypeDecimal3: 3} {
		div := pow10[scale]
		for _, to := range plainInts {
			add(from, to, func(p Payload) (Payload, error) { return toInt(to, int64(p.(Int))/div) })
		}
		add(from, TypeBoolean, func(p Payload) (Payload, error) { return Bool(p.(Int) != 0), nil })
		add(from, TypeFloat, func(p Payload) (Payload, error) {
			return Float(float32(float64(p.(Int)) / float64(div))), nil
		})
		add(from, TypeDouble, func(p Payload) (Payload, error) {
			return Float(float64(p.(Int)) / float64(div)), nil
		})
		add(from, TypeBigDecimal, func(p Payload) (Payload, error) {
			return BigDecimal{decimal.New(int64(p.(Int)), -scale)}, nil
		})
	}
	add(TypeDecimal2, TypeDecimal3, func(p Payload) (Payload, error) { return scaleInt(p.(Int), 10, "decimal_3") })
	add(TypeDecimal3, TypeDecimal2, func(p Payload) (Payload, error) { return p.(Int) / 10, nil })

	for _, from := range []TypeID{TypeFloat, TypeDouble} {
		for _, to := range plainInts {
			add(from, to, func(p Payload) (Payload, error) {
				v, err := truncFloat(float64(p.(Float)))
				if err != nil {
					return nil, err
				}
				return toInt(to, v)
			})
		}
		for to, scale := range map[TypeID]int64{TypeDecimal2: 100, TypeDecimal3: 1000} {
			add(from, to, func(p Payload) (Payload, error) {
				v, err := truncFloat(float64(p.(Float)) * float64(scale))
				if err != nil {
					return nil, err
				}
				return Int(v), nil
			})
		}
		add(from, TypeBoolean, func(p Payload) (Payload, error) { return Bool(p.(Float) != 0), nil })
		add(from, TypeBigDecimal, func(p Payload) (Payload, error) {
			f := float64(p.(Float))
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, outOfRange(f, "big_decimal")
			}
			if from == TypeFloat {
				return BigDecimal{decimal.NewFromFloat32(float32(f))}, nil
			}
			return BigDecimal{decimal.NewFromFloat(f)}, nil
		})
	}
	add(TypeFloat, TypeDouble, func(p Payload) (Payload, error) { return p, nil })
	add(TypeDouble, TypeFloat, func(p Payload) (Payload, error) { return Float(float32(p.(Float))), nil })

	for _, to := range plainInts {
		add(TypeBigDecimal, to, func(p Payload) (Payload, error) {
			v, err := truncDecimal(p.(BigDecimal).Decimal)
			if err != nil {
				return nil, err
			}
			return toInt(to, v)
		})
	}
	for to, scale := range map[TypeID]int32{TypeDecimal2: 2, TypeDecimal3: 3} {
		add(TypeBigDecimal, to, func(p Payload) (Payload, error) {
			v, err := truncDecimal(p.(BigDecimal).Shift(scale))
			if err != nil {
				return nil, err
			}
			return Int(v), nil
		})
	}
	add(TypeBigDecimal, TypeFloat, func(p Payload) (Payload, error) {
		return Float(float32(p.(BigDecimal).InexactFloat64())), nil
	})
	add(TypeBigDecimal, TypeDouble, func(p Payload) (Payload, error) {
		return Float(p.(BigDecimal).InexactFloat64()), nil
	})
	add(TypeBigDecimal, TypeBoolean, func(p Payload) (Payload, error) {
		return Bool(!p.(BigDecimal).IsZero()), nil
	})

	add(TypeDate, TypeInt, func(p Payload) (Payload, error) { return toInt(TypeInt, int64(p.(Date))) })
	add(TypeDate, TypeLong, func(p Payload) (Payload, error) { return Int(p.(Date)), nil })
	add(TypeDate, TypeTime, func(p Payload) (Payload, error) {
		return Timestamp{startOfDay(p.(Date), r.loc)}, nil
	})
	add(TypeTime, TypeDate, func(p Payload) (Payload, error) {
		return daysOf(p.(Timestamp).Time, r.loc), nil
	})
	add(TypeTime, TypeLong, func(p Payload) (Payload, error) {
		return Int(p.(Timestamp).UnixMilli()), nil
	})
	add(TypeInterval, TypeLong, func(p Payload) (Payload, error) { return p, nil })

	add(TypeMoney, TypeBigDecimal, func(p Payload) (Payload, error) {
		return BigDecimal{p.(Money).Amount}, nil
	})

	same := func(p Payload) (Payload, error) { return p, nil }
	add(TypeEmail, TypeDomainName, func(p Payload) (Payload, error) {
		s := string(p.(Text))
		return Text(s[strings.LastIndexByte(s, '@')+1:]), nil
	})
	add(TypeDomainName, TypeHostname, same)
	add(TypeDomainLabel, TypeDomainName, func(p Payload) (Payload, error) {
		s, err := validateDomainName(string(p.(Text)))
		if err != nil {
			return nil, err
		}
		return Text(s), nil
	})
	add(TypeDomainLabel, TypeHostname, func(p Payload) (Payload, error) {
		s, err := validateHostname(string(p.(Text)))
		if err != nil {
			return nil, err
		}
		return Text(s), nil
	})
	add(TypeDomainName, TypeZone, func(p Payload) (Payload, error) { return p.(Text) + ".", nil })
	add(TypeZone, TypeDomainName, func(p Payload) (Payload, error) {
		return Text(strings.TrimSuffix(string(p.(Text)), ".")), nil
	})
	add(TypeHostname, TypeInetAddress, func(p Payload) (Payload, error) {
		addr, err := netip.ParseAddr(string(p.(Text)))
		if err != nil {
			return nil, errors.New("hostname is not an IP address")
		}
		return Addr{addr}, nil
	})
	add(TypeInetAddress, TypeHostname, func(p Payload) (Payload, error) {
		return Text(p.(Addr).String()), nil
	})
}
