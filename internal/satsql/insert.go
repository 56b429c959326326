package satsql

import (
	"strings"
)

// RenderInsert renders r as a single idempotent INSERT statement.
func (s *Schema) RenderInsert(r Record) (string, error) {
	return s.renderInsert(0, r)
}

// RenderScript renders the full SQL script: the table DDL, then every record
// as an INSERT inside one transaction, in input order. A record that cannot
// be rendered fails the whole script.
func (s *Schema) RenderScript(records []Record) (string, error) {
	var b strings.Builder

	b.WriteString(s.CreateTable())
	b.WriteString("\nBEGIN;\n")

	for i, r := range records {
		stmt, err := s.renderInsert(i, r)
		if err != nil {
			return "", err
		}
		b.WriteString(stmt)
		b.WriteString("\n")
	}

	b.WriteString("COMMIT;\n")
	return b.String(), nil
}

func (s *Schema) renderInsert(index int, r Record) (string, error) {
	id := ""
	if key := s.KeyColumn(); key != nil {
		if v, ok := r.Lookup(key.Key); ok {
			id = textOf(v)
		}
		if id == "" {
			return "", &MissingRequiredFieldError{Index: index, Field: key.Key}
		}
	}

	colNames := make([]string, len(s.Columns))
	values := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		colNames[i] = quoteName(col.Name)

		switch col.Kind {
		case KindKey:
			values[i] = id
		default:
			// Required fields must be present; a null value still renders
			// through the usual substitution.
			if _, present := r[col.Key]; !present && col.Required {
				return "", &MissingRequiredFieldError{Index: index, Field: col.Key, ID: id}
			}
			if col.Kind == KindNumeric {
				values[i] = NumericOrNull(r, col.Key)
			} else {
				v, _ := r.Lookup(col.Key)
				values[i] = "'" + EscapeString(v) + "'"
			}
		}
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteName(s.Table))
	b.WriteString(" (")
	b.WriteString(strings.Join(colNames, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(values, ", "))
	b.WriteString(") ON CONFLICT DO NOTHING;")
	return b.String(), nil
}
