package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/hostdb/schema"
)

// ColumnInfo describes one leaf column of a Parquet file.
type ColumnInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`
}

// Describe lists the leaf columns of a Parquet file. Type is the name of the
// schema type values of the column are read as. Nested fields use dot
// notation, e.g. "address.street".
func Describe(path string) ([]ColumnInfo, error) {
	f, pf, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var infos []ColumnInfo
	for _, field := range pf.Schema().Fields() {
		infos = append(infos, describeField(field, "", false)...)
	}
	return infos, nil
}

func describeField(field parquet.Field, prefix string, parentRepeated bool) []ColumnInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		var infos []ColumnInfo
		for _, child := range children {
			infos = append(infos, describeField(child, name, repeated)...)
		}
		return infos
	}

	info := ColumnInfo{
		Name:         name,
		PhysicalType: physicalType(field),
		Optional:     field.Optional(),
		Repeated:     repeated,
	}
	if field.Type() != nil {
		if lt := field.Type().LogicalType(); lt != nil {
			info.LogicalType = lt.String()
		}
	}
	if id, ok := leafType(field); ok {
		info.Type = typeNames.MustType(id).Name()
	}
	return []ColumnInfo{info}
}

func physicalType(node parquet.Node) string {
	if node.Type() == nil {
		return "GROUP"
	}
	switch node.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	}
	return "UNKNOWN"
}

// typeNames resolves type names for Describe, which has no registry of
// its own. Names do not depend on the reference zone.
var typeNames = schema.NewRegistry()

// leafType picks the schema type for a flat, non-repeated leaf column.
func leafType(node parquet.Node) (schema.TypeID, bool) {
	typ := node.Type()
	if typ == nil || node.Repeated() || len(node.Fields()) > 0 {
		return 0, false
	}
	if lt := typ.LogicalType(); lt != nil && lt.Integer != nil && typ.Kind() == parquet.Int32 {
		switch lt.Integer.BitWidth {
		case 8:
			return schema.TypeByte, true
		case 16:
			return schema.TypeShort, true
		}
		return schema.TypeInt, true
	}
	if typ.Kind() == parquet.Int32 && typ.LogicalType() == nil {
		return schema.TypeInt, true
	}
	if typ.Kind() == parquet.Int96 {
		return 0, false
	}
	return nativeType(node), true
}

// ShapeFromParquet derives a row shape from a Parquet schema. Every top-level
// column must be a flat, non-repeated leaf.
func ShapeFromParquet(reg *schema.Registry, name string, ps *parquet.Schema) (*schema.Table, error) {
	var cols []schema.Column
	for _, field := range ps.Fields() {
		id, ok := leafType(field)
		if !ok {
			kind := "nested or repeated"
			if len(field.Fields()) == 0 && !field.Repeated() {
				kind = physicalType(field)
			}
			return nil, fmt.Errorf("column %s: unsupported %s parquet column", field.Name(), kind)
		}
		typ, err := reg.Type(id)
		if err != nil {
			return nil, err
		}
		cols = append(cols, schema.Column{Name: field.Name(), Type: typ})
	}
	return schema.NewTable(name, cols...)
}

// ShapeFromFile derives a row shape from the schema of a Parquet file. A
// glob pattern uses the first file it matches.
func ShapeFromFile(reg *schema.Registry, name, path string) (*schema.Table, error) {
	paths, err := expand(path)
	if err != nil {
		return nil, err
	}
	f, pf, err := openFile(paths[0])
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ShapeFromParquet(reg, name, pf.Schema())
}
