// Package fixture checks generated CSV fixtures against their schema files.
//
// Each table is a pair of files in the data directory: <table><suffix>.csv with
// one row per line in csv_ordering order, and <table><suffix>.schema, a TOML
// document naming the table, its column order and the declared column types.
// Child rows reference parents through <parent>_id columns, and parents are
// always generated before children, so every reference must point at an id
// the parent table already contains.
package fixture

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Column types a schema may declare
const (
	TypeString = "String"
	TypeInt    = "Int"
)

// Tables are listed parents first
var Tables = []string{"artists", "albums", "tracks"}

// Schema mirrors a .schema file
type Schema struct {
	Table       string            `toml:"table"`
	CSVOrdering []string          `toml:"csv_ordering"`
	Columns     map[string]string `toml:"columns"`
}

// columnType returns the declared type; id and time are always integers
func (s *Schema) columnType(column string) string {
	if column == "id" || column == "time" {
		return TypeInt
	}
	if t, ok := s.Columns[column]; ok {
		return t
	}
	return TypeString
}

// Table is a loaded fixture table
type Table struct {
	Schema *Schema
	Rows   []map[string]string
	ids    map[string]bool
}

// Violation is a single integrity problem
type Violation struct {
	File   string
	Row    int
	Reason string
}

func (v *Violation) Error() string {
	if v.Row > 0 {
		return fmt.Sprintf("%s:%d: %s", v.File, v.Row, v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.File, v.Reason)
}

// LoadSchema decodes a schema file
func LoadSchema(path string) (*Schema, error) {
	var s Schema
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, errors.Wrapf(err, "decode schema %s", path)
	}
	if s.Table == "" {
		return nil, errors.Errorf("%s: schema has no table name", path)
	}
	if len(s.CSVOrdering) == 0 {
		return nil, errors.Errorf("%s: schema has no csv_ordering", path)
	}
	for column, typ := range s.Columns {
		if typ != TypeString && typ != TypeInt {
			return nil, errors.Errorf("%s: column %s has unknown type %q", path, column, typ)
		}
	}
	return &s, nil
}

// readTable reads a CSV file and reports row-level violations
func readTable(path string, schema *Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	reader.LazyQuotes = true

	table := &Table{Schema: schema, ids: make(map[string]bool)}
	var result *multierror.Error
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}

		if len(record) != len(schema.CSVOrdering) {
			result = multierror.Append(result, &Violation{
				File:   path,
				Row:    row,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(schema.CSVOrdering), len(record)),
			})
			continue
		}

		values := make(map[string]string, len(record))
		for i, column := range schema.CSVOrdering {
			value := record[i]
			values[column] = value
			if strings.Contains(value, ".") {
				result = multierror.Append(result, &Violation{File: path, Row: row, Reason: fmt.Sprintf("column %s contains a period", column)})
			}
			if schema.columnType(column) == TypeInt {
				if _, err := strconv.Atoi(value); err != nil {
					result = multierror.Append(result, &Violation{File: path, Row: row, Reason: fmt.Sprintf("column %s is not an integer: %q", column, value)})
				}
			}
		}
		table.ids[values["id"]] = true
		table.Rows = append(table.Rows, values)
	}
	return table, result.ErrorOrNil()
}

// LoadTable loads <name><suffix>.schema and <name><suffix>.csv from dir
func LoadTable(dir, name, suffix string) (*Table, error) {
	schemaPath := filepath.Join(dir, name+suffix+".schema")
	schema, err := LoadSchema(schemaPath)
	if err != nil {
		return nil, err
	}
	if schema.Table != name {
		return nil, errors.Errorf("%s: declares table %q, expected %q", schemaPath, schema.Table, name)
	}
	return readTable(filepath.Join(dir, name+suffix+".csv"), schema)
}

// parentTable maps a foreign key column to the table it references
func parentTable(column string) (string, bool) {
	if !strings.HasSuffix(column, "_id") {
		return "", false
	}
	return strings.TrimSuffix(column, "_id") + "s", true
}

// Check loads every table and verifies field formats and referential
// integrity. All violations are returned together.
func Check(dir, suffix string) error {
	var result *multierror.Error
	tables := make(map[string]*Table, len(Tables))

	for _, name := range Tables {
		table, err := LoadTable(dir, name, suffix)
		if table == nil {
			return err
		}
		if err != nil {
			result = multierror.Append(result, err)
		}
		tables[name] = table

		csvPath := filepath.Join(dir, name+suffix+".csv")
		for i, row := range table.Rows {
			for _, column := range table.Schema.CSVOrdering {
				parentName, ok := parentTable(column)
				if !ok {
					continue
				}
				parent, loaded := tables[parentName]
				if !loaded {
					result = multierror.Append(result, &Violation{File: csvPath, Reason: fmt.Sprintf("column %s references %s, which is not generated before %s", column, parentName, name)})
					break
				}
				if !parent.ids[row[column]] {
					result = multierror.Append(result, &Violation{File: csvPath, Row: i + 1, Reason: fmt.Sprintf("%s %s does not exist in %s", column, row[column], parentName)})
				}
			}
		}
	}

	result = multierror.Append(result, checkTrackArtists(tables, filepath.Join(dir, "tracks"+suffix+".csv")))
	return result.ErrorOrNil()
}

// checkTrackArtists verifies a track's artist is the artist of its album
func checkTrackArtists(tables map[string]*Table, path string) error {
	albums, tracks := tables["albums"], tables["tracks"]
	if albums == nil || tracks == nil {
		return nil
	}

	albumArtist := make(map[string]string, len(albums.Rows))
	for _, album := range albums.Rows {
		albumArtist[album["id"]] = album["artist_id"]
	}

	var result *multierror.Error
	for i, track := range tracks.Rows {
		artist, ok := albumArtist[track["album_id"]]
		if ok && artist != track["artist_id"] {
			result = multierror.Append(result, &Violation{
				File:   path,
				Row:    i + 1,
				Reason: fmt.Sprintf("artist_id %s differs from album %s artist %s", track["artist_id"], track["album_id"], artist),
			})
		}
	}
	return result.ErrorOrNil()
}
