package reader

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
	"github.com/shopspring/decimal"

	"github.com/vegasq/hostdb/schema"
)

// nativeValue turns a value read from a parquet column into a value of the
// schema type closest to the column's physical and logical type.
func nativeValue(reg *schema.Registry, node parquet.Node, raw any) (schema.Value, error) {
	var lt *format.LogicalType
	if node.Type() != nil {
		lt = node.Type().LogicalType()
	}

	switch v := raw.(type) {
	case nil:
		return schema.Null(reg.MustType(nativeType(node))), nil
	case bool:
		return reg.NewValue(schema.TypeBoolean, schema.Bool(v))
	case int8:
		return integerValue(reg, lt, int64(v))
	case int16:
		return integerValue(reg, lt, int64(v))
	case int32:
		return integerValue(reg, lt, int64(v))
	case int64:
		return integerValue(reg, lt, v)
	case int:
		return integerValue(reg, lt, int64(v))
	case uint8:
		return integerValue(reg, lt, int64(v))
	case uint16:
		return integerValue(reg, lt, int64(v))
	case uint32:
		return integerValue(reg, lt, int64(v))
	case uint64:
		return integerValue(reg, lt, int64(v))
	case float32:
		return reg.NewValue(schema.TypeFloat, schema.Float(v))
	case float64:
		return reg.NewValue(schema.TypeDouble, schema.Float(v))
	case string:
		return reg.NewValue(schema.TypeString, schema.Text(v))
	case time.Time:
		return reg.NewValue(schema.TypeTime, schema.Timestamp{Time: v})
	case [16]byte:
		return reg.NewValue(schema.TypeIdentifier, schema.UUID(v))
	case uuid.UUID:
		return reg.NewValue(schema.TypeIdentifier, schema.UUID(v))
	case []byte:
		return bytesValue(reg, lt, v)
	}
	return schema.Value{}, fmt.Errorf("unsupported parquet value of type %T", raw)
}

func integerValue(reg *schema.Registry, lt *format.LogicalType, v int64) (schema.Value, error) {
	switch {
	case lt == nil:
	case lt.Date != nil:
		return reg.NewValue(schema.TypeDate, schema.Date(v))
	case lt.Timestamp != nil:
		return reg.NewValue(schema.TypeTime, schema.Timestamp{Time: timestamp(lt.Timestamp.Unit, v)})
	case lt.Decimal != nil:
		return reg.NewValue(schema.TypeBigDecimal, schema.BigDecimal{Decimal: decimal.New(v, -lt.Decimal.Scale)})
	}
	return reg.NewValue(schema.TypeLong, schema.Int(v))
}

func timestamp(unit format.TimeUnit, v int64) time.Time {
	switch {
	case unit.Millis != nil:
		return time.UnixMilli(v).UTC()
	case unit.Micros != nil:
		return time.UnixMicro(v).UTC()
	}
	return time.Unix(0, v).UTC()
}

func bytesValue(reg *schema.Registry, lt *format.LogicalType, b []byte) (schema.Value, error) {
	switch {
	case lt != nil && lt.UUID != nil:
		id, err := uuid.FromBytes(b)
		if err != nil {
			return schema.Value{}, err
		}
		return reg.NewValue(schema.TypeIdentifier, schema.UUID(id))
	case lt != nil && lt.Decimal != nil:
		return reg.NewValue(schema.TypeBigDecimal, schema.BigDecimal{Decimal: decimal.NewFromBigInt(twosComplement(b), -lt.Decimal.Scale)})
	}
	return reg.NewValue(schema.TypeString, schema.Text(b))
}

// twosComplement decodes a big-endian two's complement integer.
func twosComplement(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return n
}

// nativeType is the schema type nativeValue produces for a column.
func nativeType(node parquet.Node) schema.TypeID {
	typ := node.Type()
	if typ == nil {
		return schema.TypeString
	}
	if lt := typ.LogicalType(); lt != nil {
		switch {
		case lt.Date != nil:
			return schema.TypeDate
		case lt.Timestamp != nil:
			return schema.TypeTime
		case lt.Decimal != nil:
			return schema.TypeBigDecimal
		case lt.UUID != nil:
			return schema.TypeIdentifier
		case lt.UTF8 != nil, lt.Enum != nil, lt.Json != nil:
			return schema.TypeString
		}
	}
	switch typ.Kind() {
	case parquet.Boolean:
		return schema.TypeBoolean
	case parquet.Int32, parquet.Int64:
		return schema.TypeLong
	case parquet.Float:
		return schema.TypeFloat
	case parquet.Double:
		return schema.TypeDouble
	}
	return schema.TypeString
}

// coerce converts v into the type of column c. Values with no cast edge to
// the column type are formatted and re-parsed.
func coerce(reg *schema.Registry, c schema.Column, v schema.Value) (schema.Value, error) {
	if v.IsNull() {
		return schema.Null(c.Type), nil
	}
	out, err := reg.Cast(v, c.Type)
	if err == nil {
		return out, nil
	}
	var ce *schema.CastError
	if !errors.As(err, &ce) || ce.Err != nil || !reg.CanParse(c.Type) {
		return schema.Value{}, fmt.Errorf("column %s: %w", c.Name, err)
	}
	text, _ := reg.Format(v, schema.Natural)
	out, err = reg.Parse(c.Type, text)
	if err != nil {
		return schema.Value{}, fmt.Errorf("column %s: %w", c.Name, err)
	}
	return out, nil
}
