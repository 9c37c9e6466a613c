package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artistsSchema = `
table = "artists"
csv_ordering = ["id", "time", "name"]

[columns]
name = "String"
`

const albumsSchema = `
table = "albums"
csv_ordering = ["id", "time", "name", "artist_id", "tracks", "label"]

[columns]
name = "String"
artist_id = "Int"
tracks = "Int"
label = "String"
`

const tracksSchema = `
table = "tracks"
csv_ordering = ["id", "time", "name", "artist_id", "album_id", "length"]

[columns]
name = "String"
artist_id = "Int"
album_id = "Int"
length = "Int"
`

type fixtureFiles struct {
	artists, albums, tracks string
}

func validFixtures() fixtureFiles {
	return fixtureFiles{
		artists: "0,1987,Jane Doe\n1,1990,John Roe\n",
		albums:  "0,1999,First,1,7,Acme Inc\n1,2001,Second,0,3,Globex\n",
		tracks:  "0,1999,Smith,1,0,200\n1,2001,Jones,0,1,150\n2,1999,Brown,1,0,300\n",
	}
}

func writeFixtures(t *testing.T, suffix string, f fixtureFiles) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"artists" + suffix + ".schema": artistsSchema,
		"albums" + suffix + ".schema":  albumsSchema,
		"tracks" + suffix + ".schema":  tracksSchema,
		"artists" + suffix + ".csv":    f.artists,
		"albums" + suffix + ".csv":     f.albums,
		"tracks" + suffix + ".csv":     f.tracks,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func violations(t *testing.T, err error) []string {
	t.Helper()
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	var out []string
	for _, e := range merr.Errors {
		out = append(out, e.Error())
	}
	return out
}

func TestCheck_Valid(t *testing.T) {
	dir := writeFixtures(t, "", validFixtures())
	assert.NoError(t, Check(dir, ""))
}

func TestCheck_Suffix(t *testing.T) {
	dir := writeFixtures(t, "_small", validFixtures())
	assert.NoError(t, Check(dir, "_small"))
}

func TestCheck_DanglingReferences(t *testing.T) {
	f := validFixtures()
	f.albums = "0,1999,First,5,7,Acme Inc\n"
	f.tracks = "0,1999,Smith,5,0,200\n1,2001,Jones,0,9,150\n"
	dir := writeFixtures(t, "", f)

	got := violations(t, Check(dir, ""))
	joined := strings.Join(got, "\n")
	assert.Contains(t, joined, "albums.csv:1: artist_id 5 does not exist in artists")
	assert.Contains(t, joined, "tracks.csv:1: artist_id 5 does not exist in artists")
	assert.Contains(t, joined, "tracks.csv:2: album_id 9 does not exist in albums")
	assert.Len(t, got, 3)
}

func TestCheck_TrackArtistMustMatchAlbum(t *testing.T) {
	f := validFixtures()
	f.tracks = "0,1999,Smith,0,0,200\n"
	dir := writeFixtures(t, "", f)

	got := violations(t, Check(dir, ""))
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "artist_id 0 differs from album 0 artist 1")
}

func TestCheck_FieldFormats(t *testing.T) {
	f := validFixtures()
	f.artists = "0,1987,Jane Doe Jr.\n1,19x0,John Roe\n2,1990\n"
	dir := writeFixtures(t, "", f)

	joined := strings.Join(violations(t, Check(dir, "")), "\n")
	assert.Contains(t, joined, "artists.csv:1: column name contains a period")
	assert.Contains(t, joined, `artists.csv:2: column time is not an integer: "19x0"`)
	assert.Contains(t, joined, "artists.csv:3: expected 3 fields, got 2")
}

func TestCheck_MissingFiles(t *testing.T) {
	assert.Error(t, Check(t.TempDir(), ""))
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "albums.schema")
	require.NoError(t, os.WriteFile(good, []byte(albumsSchema), 0644))
	s, err := LoadSchema(good)
	require.NoError(t, err)
	assert.Equal(t, "albums", s.Table)
	assert.Equal(t, []string{"id", "time", "name", "artist_id", "tracks", "label"}, s.CSVOrdering)
	assert.Equal(t, TypeInt, s.columnType("artist_id"))
	assert.Equal(t, TypeInt, s.columnType("id"))
	assert.Equal(t, TypeString, s.columnType("label"))

	bad := filepath.Join(dir, "bad.schema")
	require.NoError(t, os.WriteFile(bad, []byte("table = \"x\"\ncsv_ordering = [\"id\"]\n[columns]\nid = \"Float\"\n"), 0644))
	_, err = LoadSchema(bad)
	assert.Error(t, err)
}

func TestParentTable(t *testing.T) {
	p, ok := parentTable("artist_id")
	assert.True(t, ok)
	assert.Equal(t, "artists", p)

	_, ok = parentTable("length")
	assert.False(t, ok)
}
