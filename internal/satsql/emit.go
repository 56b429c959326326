package satsql

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"
)

// EmitModelFile writes the Go model for schema to path. See EmitModelGo.
func EmitModelFile(path, pkgName string, schema *Schema) error {
	var buf bytes.Buffer
	if err := EmitModelGo(&buf, pkgName, schema); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// EmitModelGo renders a Go source file describing the table produced by
// schema: the table name, its DDL, the ordered column list, and a row struct.
func EmitModelGo(w io.Writer, pkgName string, schema *Schema) error {
	typeName := rowTypeName(schema)

	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by satsql. DO NOT EDIT.")

	f.Commentf("%sTable is the name of the SQL table holding %s rows.", typeName, typeName)
	f.Const().Id(typeName + "Table").Op("=").Lit(schema.Table)

	f.Commentf("Create%sTable creates the %s table if it does not exist.", typeName, schema.Table)
	f.Const().Id("Create" + typeName + "Table").Op("=").Lit(schema.CreateTable())

	f.Commentf("%sColumns lists the columns of the %s table in insert order.", typeName, schema.Table)
	f.Var().Id(typeName + "Columns").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, col := range schema.Columns {
			g.Lit(col.Name)
		}
	})

	fields := make([]jen.Code, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		goType, err := goTypeFor(col)
		if err != nil {
			return err
		}
		field := jen.Id(ToGoName(col.Name)).Add(goType).Tag(map[string]string{
			"db":   col.Name,
			"json": col.Key + ",omitempty",
		})
		if col.Comment != "" {
			field.Comment(col.Comment)
		}
		fields = append(fields, field)
	}

	f.Commentf("%s is one row of the %s table.", typeName, schema.Table)
	f.Type().Id(typeName).Struct(fields...)

	return f.Render(w)
}

// goTypeFor maps a column to the Go type of its struct field. Numeric
// columns are nullable and use pointers.
func goTypeFor(col Column) (*jen.Statement, error) {
	sqlType := strings.ToUpper(col.Type)
	switch col.Kind {
	case KindKey:
		return jen.Int64(), nil
	case KindText:
		return jen.String(), nil
	case KindNumeric:
		switch {
		case strings.Contains(sqlType, "INT"):
			return jen.Op("*").Int64(), nil
		case strings.Contains(sqlType, "REAL"), strings.Contains(sqlType, "FLOA"),
			strings.Contains(sqlType, "DOUB"), strings.Contains(sqlType, "NUMERIC"),
			strings.Contains(sqlType, "DECIMAL"):
			return jen.Op("*").Float64(), nil
		}
		return nil, fmt.Errorf("column %q: no Go type for SQL type %q", col.Name, col.Type)
	}
	return nil, fmt.Errorf("column %q: unknown kind %q", col.Name, col.Kind)
}

// rowTypeName returns the Go type name for rows of the schema's table. An
// explicit type_name wins; otherwise the table name is singularized, e.g.
// "satellites" becomes "Satellite" and "status" stays "Status".
func rowTypeName(schema *Schema) string {
	if schema.TypeName != "" {
		return schema.TypeName
	}
	return ToGoName(singular(schema.Table))
}

// singular strips a plural suffix from the last word of name. Words ending
// in "ss", "us" or "is" are left alone.
func singular(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "ies") && len(name) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"), strings.HasSuffix(lower, "is"):
		return name
	case strings.HasSuffix(lower, "s") && len(name) > 1:
		return name[:len(name)-1]
	}
	return name
}
