package satsql

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names of the built-in schemas.
const (
	DetailedSchema = "detailed"
	MinimalSchema  = "minimal"
)

//go:embed schemas.yml
var builtinSchemas []byte

// Kind selects how a column value is rendered into an INSERT statement.
type Kind string

const (
	// KindKey is the integer primary key. It is emitted unquoted and
	// unescaped, and must be present in every record.
	KindKey Kind = "key"
	// KindText is emitted as an escaped, single-quoted string literal.
	KindText Kind = "text"
	// KindNumeric is emitted as a bare literal, or NULL when missing.
	KindNumeric Kind = "numeric"
)

// SchemaSet holds the named schema configurations loaded from YAML.
type SchemaSet struct {
	Schemas map[string]*Schema `yaml:"schemas"`
}

// Schema is one configuration of the record-to-SQL renderer.
type Schema struct {
	// Name is the key of the schema within its SchemaSet.
	Name string `yaml:"-"`

	// Table is the SQL table created and populated by the script.
	Table string `yaml:"table"`

	// Comment is the table description, emitted inside the CREATE TABLE body.
	Comment string `yaml:"comment"`

	// TypeName is the Go row type emitted for the table. When empty it is
	// derived from the table name.
	TypeName string `yaml:"type_name"`

	// Columns in DDL and INSERT order.
	Columns []Column `yaml:"columns"`
}

// Column maps one JSON record field to one SQL column.
type Column struct {
	Name     string `yaml:"name"`     // SQL column name
	Key      string `yaml:"key"`      // JSON field name, matched case-sensitively
	Type     string `yaml:"type"`     // SQL type used in the DDL
	Kind     Kind   `yaml:"kind"`     // rendering of the value
	Required bool   `yaml:"required"` // record must carry the field
	NotNull  bool   `yaml:"not_null"`
	Comment  string `yaml:"comment"`
}

// DefaultSchemas returns the schema set compiled into the binary.
func DefaultSchemas() (*SchemaSet, error) {
	set, err := decodeSchemas(bytes.NewReader(builtinSchemas))
	if err != nil {
		return nil, fmt.Errorf("built-in schemas: %w", err)
	}
	return set, nil
}

// LoadSchemas reads and validates a schema set from a YAML file.
func LoadSchemas(path string) (*SchemaSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading schemas: %w", err)
	}
	defer f.Close()

	set, err := decodeSchemas(f)
	if err != nil {
		return nil, fmt.Errorf("parsing schemas %s: %w", path, err)
	}
	return set, nil
}

func decodeSchemas(r io.Reader) (*SchemaSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var set SchemaSet
	if err := dec.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no schemas defined")
		}
		return nil, err
	}
	if len(set.Schemas) == 0 {
		return nil, errors.New("no schemas defined")
	}

	for name, s := range set.Schemas {
		if s == nil {
			return nil, fmt.Errorf("schema %q is empty", name)
		}
		s.Name = name
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
	}
	return &set, nil
}

// Lookup returns the schema with the given name.
func (set *SchemaSet) Lookup(name string) (*Schema, error) {
	if s, ok := set.Schemas[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown schema %q (available: %s)", name, strings.Join(set.Names(), ", "))
}

// Names returns the schema names in sorted order.
func (set *SchemaSet) Names() []string {
	names := make([]string, 0, len(set.Schemas))
	for name := range set.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyColumn returns the primary key column. A validated schema has exactly one.
func (s *Schema) KeyColumn() *Column {
	for i := range s.Columns {
		if s.Columns[i].Kind == KindKey {
			return &s.Columns[i]
		}
	}
	return nil
}

func (s *Schema) validate() error {
	if s.Table == "" {
		return errors.New("table name is required")
	}
	if len(s.Columns) == 0 {
		return errors.New("no columns defined")
	}
	if s.TypeName != "" && !(token.IsIdentifier(s.TypeName) && token.IsExported(s.TypeName)) {
		return fmt.Errorf("type_name %q is not an exported Go identifier", s.TypeName)
	}

	seen := make(map[string]bool, len(s.Columns))
	keys := 0
	for i, col := range s.Columns {
		switch {
		case col.Name == "":
			return fmt.Errorf("column %d: name is required", i)
		case col.Key == "":
			return fmt.Errorf("column %q: key is required", col.Name)
		case col.Type == "":
			return fmt.Errorf("column %q: type is required", col.Name)
		}
		if seen[strings.ToLower(col.Name)] {
			return fmt.Errorf("column %q is defined more than once", col.Name)
		}
		seen[strings.ToLower(col.Name)] = true

		switch col.Kind {
		case KindKey:
			keys++
		case KindText, KindNumeric:
		default:
			return fmt.Errorf("column %q: unknown kind %q", col.Name, col.Kind)
		}
	}
	if keys != 1 {
		return fmt.Errorf("want exactly one key column, found %d", keys)
	}
	return nil
}
