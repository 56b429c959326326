package satsql

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// reservedWords holds keywords reserved by SQLite or PostgreSQL that are
// plausible table or column names in a data feed. Such names are quoted.
var reservedWords = toSet(strings.Fields(`
	all alter and array as asc authorization begin between both by case
	check collate column commit conflict constraint create cross current_date
	current_time current_timestamp current_user default delete desc distinct
	do drop else end except exists fetch foreign from full grant group having
	in index inner insert intersect into is join key leading left like limit
	natural not nothing null of offset on only or order outer primary
	references returning right rollback row select session_user set table
	then to trailing transaction union unique update user using values when
	where window with
`))

// quoteName returns name quoted as an identifier if it's a reserved SQL
// word, otherwise returns it unchanged.
func quoteName(name string) string {
	if reservedWords[strings.ToLower(name)] {
		return pq.QuoteIdentifier(name)
	}
	return name
}

// CreateTable renders the CREATE TABLE IF NOT EXISTS statement for the
// schema. Comments are placed inside the table body so they survive in the
// database catalog.
func (s *Schema) CreateTable() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n", quoteName(s.Table)))

	if s.Comment != "" {
		b.WriteString(fmt.Sprintf("  -- %s\n", s.Comment))
	}

	for i, col := range s.Columns {
		b.WriteString("  ")
		b.WriteString(quoteName(col.Name))
		b.WriteString(" ")
		b.WriteString(col.Type)

		if col.Kind == KindKey {
			b.WriteString(" PRIMARY KEY")
		} else if col.NotNull {
			b.WriteString(" NOT NULL")
		}

		if i < len(s.Columns)-1 {
			b.WriteString(",")
		}

		if col.Comment != "" {
			b.WriteString(fmt.Sprintf(" -- %s", col.Comment))
		}

		b.WriteString("\n")
	}

	b.WriteString(");\n")
	return b.String()
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, item := range items {
		s[item] = true
	}
	return s
}
