package satsql

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const detailedColumns = "satellite_id, name, object_id, object_type, status, owner, launch_date, launch_site, " +
	"revolution, inclination, farthest_orbit_distance, lowest_orbit_distance, rcs, description"

func mustSchema(t *testing.T, name string) *Schema {
	t.Helper()
	set, err := DefaultSchemas()
	if err != nil {
		t.Fatal(err)
	}
	s, err := set.Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustDecode(t *testing.T, doc string) []Record {
	t.Helper()
	records, err := DecodeRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestRenderInsertDetailed(t *testing.T) {
	s := mustSchema(t, DetailedSchema)

	tests := []struct {
		name   string
		record string
		want   string
	}{
		{
			name:   "sparse record",
			record: `{"norad_id": 25544, "name": "ISS (ZARYA)", "owner": "ISS"}`,
			want: "INSERT INTO satellites (" + detailedColumns + ") VALUES " +
				"(25544, 'ISS (ZARYA)', '', '', '', 'ISS', '', '', NULL, NULL, NULL, NULL, NULL, '') ON CONFLICT DO NOTHING;",
		},
		{
			name: "full record",
			record: `{"norad_id": 5, "name": "VANGUARD 1", "object_id": "1958-002B", "object_type": "PAYLOAD",
				"status": "D", "owner": "US", "launch_date": "1958-03-17", "launch_site": "AFETR",
				"revolution": 132.71, "inclination": 34.25, "farthest_orbit_distance": 3834,
				"lowest_orbit_distance": 650, "RCS": 0.122, "description": "Oldest satellite in orbit"}`,
			want: "INSERT INTO satellites (" + detailedColumns + ") VALUES " +
				"(5, 'VANGUARD 1', '1958-002B', 'PAYLOAD', 'D', 'US', '1958-03-17', 'AFETR', 132.71, 34.25, 3834, 650, 0.122, 'Oldest satellite in orbit') ON CONFLICT DO NOTHING;",
		},
		{
			name:   "apostrophes",
			record: `{"norad_id": 1, "name": "O'Brien", "description": "it's 'quoted'"}`,
			want: "INSERT INTO satellites (" + detailedColumns + ") VALUES " +
				"(1, 'O''Brien', '', '', '', '', '', '', NULL, NULL, NULL, NULL, NULL, 'it''s ''quoted''') ON CONFLICT DO NOTHING;",
		},
		{
			name:   "nulls and empty strings",
			record: `{"norad_id": 2, "name": null, "status": null, "revolution": "", "inclination": null, "RCS": 0}`,
			want: "INSERT INTO satellites (" + detailedColumns + ") VALUES " +
				"(2, '', '', '', '', '', '', '', NULL, NULL, NULL, NULL, 0, '') ON CONFLICT DO NOTHING;",
		},
		{
			name:   "lowercase rcs key is not RCS",
			record: `{"norad_id": 3, "name": "X", "rcs": 1.5}`,
			want: "INSERT INTO satellites (" + detailedColumns + ") VALUES " +
				"(3, 'X', '', '', '', '', '', '', NULL, NULL, NULL, NULL, NULL, '') ON CONFLICT DO NOTHING;",
		},
		{
			name:   "numeric text passes through",
			record: `{"norad_id": 4, "name": "Y", "inclination": "51.6", "farthest_orbit_distance": "n/a"}`,
			want: "INSERT INTO satellites (" + detailedColumns + ") VALUES " +
				"(4, 'Y', '', '', '', '', '', '', NULL, 51.6, n/a, NULL, NULL, '') ON CONFLICT DO NOTHING;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := mustDecode(t, "["+tt.record+"]")
			got, err := s.RenderInsert(records[0])
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderInsertNameRequired(t *testing.T) {
	s := mustSchema(t, DetailedSchema)
	records := mustDecode(t, `[{"norad_id": 25544, "owner": "ISS"}]`)

	_, err := s.RenderInsert(records[0])
	var missing *MissingRequiredFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("got error %v, want *MissingRequiredFieldError", err)
	}
	if missing.Field != "name" || missing.ID != "25544" {
		t.Errorf("got %+v", missing)
	}
}

func TestRenderInsertMinimal(t *testing.T) {
	s := mustSchema(t, MinimalSchema)
	records := mustDecode(t, `[
		{"NORAD_ID": 25544, "Current_Official_Name": "ISS (ZARYA)", "Source": "CelesTrak"},
		{"NORAD_ID": 5, "Current_Official_Name": "Vanguard's 1"}
	]`)

	want := []string{
		"INSERT INTO satellites (satellite_id, name, source) VALUES (25544, 'ISS (ZARYA)', 'CelesTrak') ON CONFLICT DO NOTHING;",
		"INSERT INTO satellites (satellite_id, name, source) VALUES (5, 'Vanguard''s 1', '') ON CONFLICT DO NOTHING;",
	}
	for i, r := range records {
		got, err := s.RenderInsert(r)
		if err != nil {
			t.Fatal(err)
		}
		if got != want[i] {
			t.Errorf("record %d:\ngot:  %s\nwant: %s", i, got, want[i])
		}
	}
}

func TestRenderScriptMissingKey(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		doc    string
		index  int
		field  string
	}{
		{
			name:   "absent",
			schema: DetailedSchema,
			doc:    `[{"norad_id": 1, "name": "A"}, {"name": "B"}]`,
			index:  1,
			field:  "norad_id",
		},
		{
			name:   "null",
			schema: DetailedSchema,
			doc:    `[{"norad_id": null, "name": "A"}]`,
			index:  0,
			field:  "norad_id",
		},
		{
			name:   "empty string",
			schema: DetailedSchema,
			doc:    `[{"norad_id": 1, "name": "A"}, {"norad_id": 2, "name": "B"}, {"norad_id": "", "name": "C"}]`,
			index:  2,
			field:  "norad_id",
		},
		{
			name:   "wrong case",
			schema: MinimalSchema,
			doc:    `[{"norad_id": 1, "Current_Official_Name": "A"}]`,
			index:  0,
			field:  "NORAD_ID",
		},
		{
			name:   "minimal name",
			schema: MinimalSchema,
			doc:    `[{"NORAD_ID": 1, "Current_Official_Name": "A"}, {"NORAD_ID": 7}]`,
			index:  1,
			field:  "Current_Official_Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSchema(t, tt.schema)
			script, err := s.RenderScript(mustDecode(t, tt.doc))
			if script != "" {
				t.Errorf("expected no script on error, got %q", script)
			}

			var missing *MissingRequiredFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("got error %v, want *MissingRequiredFieldError", err)
			}
			if missing.Index != tt.index || missing.Field != tt.field {
				t.Errorf("got %+v, want index %d field %q", missing, tt.index, tt.field)
			}
		})
	}
}

func TestRenderScript(t *testing.T) {
	s := mustSchema(t, MinimalSchema)
	records := mustDecode(t, `[
		{"NORAD_ID": 3, "Current_Official_Name": "C"},
		{"NORAD_ID": 1, "Current_Official_Name": "A"},
		{"NORAD_ID": 2, "Current_Official_Name": "B"}
	]`)

	got, err := s.RenderScript(records)
	if err != nil {
		t.Fatal(err)
	}

	want := `CREATE TABLE IF NOT EXISTS satellites (
  -- tracked space objects keyed by NORAD catalog number
  satellite_id INTEGER PRIMARY KEY, -- NORAD catalog number
  name TEXT NOT NULL, -- current official name
  source TEXT -- data source
);

BEGIN;
INSERT INTO satellites (satellite_id, name, source) VALUES (3, 'C', '') ON CONFLICT DO NOTHING;
INSERT INTO satellites (satellite_id, name, source) VALUES (1, 'A', '') ON CONFLICT DO NOTHING;
INSERT INTO satellites (satellite_id, name, source) VALUES (2, 'B', '') ON CONFLICT DO NOTHING;
COMMIT;
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderScriptEmpty(t *testing.T) {
	s := mustSchema(t, DetailedSchema)
	got, err := s.RenderScript(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, ");\n\nBEGIN;\nCOMMIT;\n") {
		t.Errorf("unexpected script tail:\n%s", got)
	}
	if strings.Contains(got, "INSERT") {
		t.Error("expected no INSERT statements")
	}
}

func TestCreateTableQuotesReservedWords(t *testing.T) {
	s := &Schema{
		Table: "order",
		Columns: []Column{
			{Name: "key", Key: "k", Type: "INTEGER", Kind: KindKey},
			{Name: "values", Key: "v", Type: "TEXT", Kind: KindText, NotNull: true},
		},
	}

	want := "CREATE TABLE IF NOT EXISTS \"order\" (\n" +
		"  \"key\" INTEGER PRIMARY KEY,\n" +
		"  \"values\" TEXT NOT NULL\n" +
		");\n"
	if got := s.CreateTable(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	got, err := s.RenderInsert(Record{"k": json.Number("9"), "v": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if want := `INSERT INTO "order" ("key", "values") VALUES (9, 'x') ON CONFLICT DO NOTHING;`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRenderScriptSingleRecord(t *testing.T) {
	s := mustSchema(t, DetailedSchema)
	got, err := s.RenderScript(mustDecode(t, `[{"norad_id": 25544, "name": "ISS (ZARYA)", "owner": "ISS"}]`))
	if err != nil {
		t.Fatal(err)
	}

	wantTail := "\nBEGIN;\n" +
		"INSERT INTO satellites (" + detailedColumns + ") VALUES " +
		"(25544, 'ISS (ZARYA)', '', '', '', 'ISS', '', '', NULL, NULL, NULL, NULL, NULL, '') ON CONFLICT DO NOTHING;\n" +
		"COMMIT;\n"
	if !strings.HasSuffix(got, wantTail) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, wantTail)
	}
	if !strings.HasPrefix(got, s.CreateTable()) {
		t.Errorf("script does not start with the DDL:\n%s", got)
	}
}

func TestQuoteName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"satellites", "satellites"},
		{"name", "name"},
		{"status", "status"},
		{"user", `"user"`},
		{"Order", `"Order"`},
		{"current_timestamp", `"current_timestamp"`},
		{"returning", `"returning"`},
	}

	for _, tt := range tests {
		if got := quoteName(tt.input); got != tt.want {
			t.Errorf("quoteName(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
