package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
)

const (
	testModels = `{"1001": {"id": 1001, "name": "Basic", "type": 0, "css": "", "sortf": 0,
		"latexPre": "\\documentclass{article}", "req": [[0, "any", [0]]],
		"tmpls": [{"name": "Card 1", "ord": 0, "qfmt": "{{Front}}", "afmt": "{{FrontSide}}<hr>{{Jyutping}}"}],
		"flds": [{"name": "Front", "ord": 0, "media": [], "plainText": false},
			{"name": "Jyutping", "ord": 1, "media": [], "plainText": true, "font": "Noto Sans", "size": 18}]},
		"1002": {"id": 1002, "name": "Other", "type": 0, "css": "",
		"flds": [{"name": "Text", "ord": 0}]}}`
	testDecks = `{"1": {"id": 1, "name": "Default", "desc": ""}}`
)

// buildPackage writes a minimal .apkg holding the given notes.
func buildPackage(t *testing.T, notes ...testNote) string {
	t.Helper()
	dir := t.TempDir()

	dbPath := filepath.Join(dir, "collection.anki2")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE col (id INTEGER PRIMARY KEY, models TEXT NOT NULL, decks TEXT NOT NULL)`,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, guid TEXT NOT NULL, mid INTEGER NOT NULL,
			mod INTEGER NOT NULL, usn INTEGER NOT NULL DEFAULT 0, tags TEXT NOT NULL DEFAULT '',
			flds TEXT NOT NULL, sfld TEXT NOT NULL, csum INTEGER NOT NULL DEFAULT 0,
			flags INTEGER NOT NULL DEFAULT 0, data TEXT NOT NULL DEFAULT '')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO col (id, models, decks) VALUES (1, ?, ?)`, testModels, testDecks)
	require.NoError(t, err)

	for _, n := range notes {
		_, err := db.Exec(`INSERT INTO notes (id, guid, mid, mod, flds, sfld) VALUES (?, ?, ?, 0, ?, ?)`,
			n.id, n.guid, n.mid, n.flds, n.sfld)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	apkg := filepath.Join(dir, "deck.apkg")
	out, err := os.Create(apkg)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	require.NoError(t, addToZip(zw, "collection.anki2", dbPath))
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	return apkg
}

type testNote struct {
	id   int64
	guid string
	mid  int64
	flds string
	sfld string
}

func openPackage(t *testing.T, path string) *Package {
	t.Helper()
	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	t.Cleanup(func() { pkg.Close() })
	return pkg
}

func TestOpenPackage(t *testing.T) {
	path := buildPackage(t,
		testNote{id: 1, guid: "a", mid: 1001, flds: "濕\x1fsap1", sfld: "濕"},
		testNote{id: 2, guid: "b", mid: 1002, flds: "hello", sfld: "hello"},
	)
	pkg := openPackage(t, path)

	assert.Len(t, pkg.Models, 2)
	assert.Len(t, pkg.Decks, 1)
	require.Len(t, pkg.Notes, 2)

	note := pkg.Notes[0]
	assert.Equal(t, []string{"Front", "Jyutping"}, pkg.GetFieldNames(note))

	v, ok := pkg.GetFieldValue(note, "jyutping")
	assert.True(t, ok)
	assert.Equal(t, "sap1", v)

	_, ok = pkg.GetFieldValue(pkg.Notes[1], "Jyutping")
	assert.False(t, ok)

	assert.Contains(t, pkg.Summary(), "Notes: 2")
}

func TestOpenPackageMissingFile(t *testing.T) {
	_, err := OpenPackage(filepath.Join(t.TempDir(), "missing.apkg"))
	assert.ErrorContains(t, err, "opening zip")
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "sap1  aa3", StripHTML("<b>sap1</b>&nbsp;aa3"))
	assert.Equal(t, "a & b", StripHTML("a &amp; b"))
}

func TestAugmentRoundTrip(t *testing.T) {
	path := buildPackage(t,
		testNote{id: 1, guid: "a", mid: 1001, flds: "濕亞\x1f<i>sap1</i> aa3 byu3", sfld: "濕亞"},
		testNote{id: 2, guid: "b", mid: 1002, flds: "untouched", sfld: "untouched"},
	)
	pkg := openPackage(t, path)

	res, err := pkg.Augment("Jyutping", jyutping.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Notes)
	assert.Equal(t, 3, res.Syllables)
	assert.Equal(t, []string{"byu3"}, res.Unresolved)

	out := filepath.Join(t.TempDir(), "out.apkg")
	require.NoError(t, pkg.SaveAs(out))

	got := openPackage(t, out)
	require.Len(t, got.Notes, 2)

	note := got.Notes[0]
	want := map[string]string{
		FieldCharacter: "濕 亞 -",
		FieldKatakana:  "サプ アー -",
		FieldInitial:   "s - b",
		FieldFinal:     "ap aa yu",
		FieldGroup:     "sibilant - 両唇音",
	}
	for field, value := range want {
		v, ok := got.GetFieldValue(note, field)
		require.True(t, ok, field)
		assert.Equal(t, value, v, field)
	}

	// Models without the source field are not extended.
	assert.Equal(t, []string{"Text"}, got.GetFieldNames(got.Notes[1]))
	assert.Equal(t, []string{"untouched"}, got.Notes[1].Fields)
}

func TestAugmentTwiceKeepsFieldsUnique(t *testing.T) {
	path := buildPackage(t, testNote{id: 1, guid: "a", mid: 1001, flds: "濕\x1fsap1", sfld: "濕"})
	pkg := openPackage(t, path)

	_, err := pkg.Augment("Jyutping", jyutping.Default())
	require.NoError(t, err)
	_, err = pkg.Augment("Jyutping", jyutping.Default())
	require.NoError(t, err)

	assert.Len(t, pkg.GetFieldNames(pkg.Notes[0]), 2+len(JyutpingFields))
}

func TestSetFieldsUnknownField(t *testing.T) {
	path := buildPackage(t, testNote{id: 1, guid: "a", mid: 1001, flds: "濕\x1fsap1", sfld: "濕"})
	pkg := openPackage(t, path)

	err := pkg.SetFields(pkg.Notes[0], map[string]string{"Nope": "x"})
	assert.ErrorContains(t, err, `no field "Nope"`)
}

func TestAddFieldsUnknownModel(t *testing.T) {
	path := buildPackage(t)
	pkg := openPackage(t, path)

	assert.Error(t, pkg.AddFields(42, JyutpingFields))
}

func TestSaveAsKeepsModelKeys(t *testing.T) {
	path := buildPackage(t, testNote{id: 1, guid: "a", mid: 1001, flds: "濕\x1fsap1", sfld: "濕"})
	pkg := openPackage(t, path)

	_, err := pkg.Augment("Jyutping", jyutping.Default())
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "out.apkg")
	require.NoError(t, pkg.SaveAs(out))

	got := openPackage(t, out)
	var raw string
	require.NoError(t, got.db.QueryRow("SELECT models FROM col").Scan(&raw))

	var models map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &models))
	basic := models["1001"]
	require.NotNil(t, basic)

	assert.JSONEq(t, `[{"name": "Card 1", "ord": 0, "qfmt": "{{Front}}", "afmt": "{{FrontSide}}<hr>{{Jyutping}}"}]`,
		string(basic["tmpls"]))
	assert.JSONEq(t, `0`, string(basic["sortf"]))
	assert.JSONEq(t, `[[0, "any", [0]]]`, string(basic["req"]))
	assert.JSONEq(t, `"\\documentclass{article}"`, string(basic["latexPre"]))

	var fields []map[string]any
	require.NoError(t, json.Unmarshal(basic["flds"], &fields))
	require.Len(t, fields, 2+len(JyutpingFields))
	assert.Equal(t, []any{}, fields[0]["media"])
	assert.Equal(t, true, fields[1]["plainText"])

	// Added fields copy the settings of the last existing field.
	added := fields[2]
	assert.Equal(t, FieldCharacter, added["name"])
	assert.Equal(t, float64(2), added["ord"])
	assert.Equal(t, "Noto Sans", added["font"])
	assert.Equal(t, true, added["plainText"])
}
