package cli

// Test Plan for CLI commands:
// - executeImport writes to the SQLite database and prints a summary
// - executeImport --dry-run leaves no database behind
// - executeImport --report writes the text report to a file or stdout
// - executeImport reports fatal errors with their line and leaves the database empty
// - executeImport rejects an invalid --charset before opening anything
// - executeScan prints encodings and counts
// - executeCheck counts records and finds no cycles after an import
// - executeCheck --ancestors lists both parents; an unknown id is an error
// - formatNumber groups thousands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/kinship/internal/config"
	"github.com/mvp-joe/kinship/internal/storage"
)

const sampleGedcom = `0 HEAD
1 SOUR TEST
1 GEDC
2 VERS 5.5
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 FAMS @F1@
0 @I2@ INDI
1 NAME Mary /Jones/
1 SEX F
1 FAMS @F1@
0 @I3@ INDI
1 NAME Tom /Smith/
1 FAMC @F1@
1 _CUSTOM something
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
0 TRLR
`

func writeGedcom(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "family.ged")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExecuteImport_WritesDatabase(t *testing.T) {
	dir := t.TempDir()
	path := writeGedcom(t, dir, sampleGedcom)

	var out bytes.Buffer
	err := executeImport(context.Background(), config.Default(), dir, path, importFlags{}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Import complete: 4 records")
	assert.Contains(t, out.String(), "Warnings:           1")
	assert.FileExists(t, filepath.Join(dir, config.DirName, "tree.db"))

	out.Reset()
	require.NoError(t, executeCheck(context.Background(), config.Default(), filepath.Join(dir, config.DirName, "tree.db"), "", &out))
	assert.Contains(t, out.String(), "Last import: family.ged")
	assert.Contains(t, out.String(), "person      3")
	assert.Contains(t, out.String(), "Pedigree: 2 links, 2 generations, 1 trees")
	assert.Contains(t, out.String(), "No cycles")
}

func TestExecuteCheck_Ancestors(t *testing.T) {
	dir := t.TempDir()
	path := writeGedcom(t, dir, sampleGedcom)
	dbPath := filepath.Join(dir, "tree.db")

	var out bytes.Buffer
	require.NoError(t, executeImport(context.Background(), config.Default(), dir, path, importFlags{db: dbPath, quiet: true}, &out))

	out.Reset()
	require.NoError(t, executeCheck(context.Background(), config.Default(), dbPath, "I0003", &out))
	assert.Regexp(t, `Ancestors of I0003: I000[12], I000[12]`, out.String())

	out.Reset()
	require.NoError(t, executeCheck(context.Background(), config.Default(), dbPath, "I0001", &out))
	assert.Contains(t, out.String(), "No known ancestors of I0001")

	err := executeCheck(context.Background(), config.Default(), dbPath, "I0099", &out)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestExecuteImport_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeGedcom(t, dir, sampleGedcom)

	var out bytes.Buffer
	err := executeImport(context.Background(), config.Default(), dir, path, importFlags{dryRun: true}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Dry run: nothing was written")
	assert.NoDirExists(t, filepath.Join(dir, config.DirName))
}

func TestExecuteImport_Report(t *testing.T) {
	dir := t.TempDir()
	path := writeGedcom(t, dir, sampleGedcom)
	reportPath := filepath.Join(dir, "report.txt")

	var out bytes.Buffer
	flags := importFlags{db: filepath.Join(dir, "custom.db"), quiet: true, reportPath: reportPath}
	require.NoError(t, executeImport(context.Background(), config.Default(), dir, path, flags, &out))

	assert.Empty(t, out.String())
	assert.FileExists(t, filepath.Join(dir, "custom.db"))
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Import of family.ged")
	assert.Contains(t, string(data), "Line ignored as not understood: 1 _CUSTOM something")

	out.Reset()
	flags = importFlags{dryRun: true, quiet: true, reportPath: "-", ignore: []string{"_*"}}
	require.NoError(t, executeImport(context.Background(), config.Default(), dir, path, flags, &out))
	assert.Contains(t, out.String(), "Warnings: 0")
}

func TestExecuteImport_FatalLeavesDatabaseEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeGedcom(t, dir, "0 HEAD\n1 CHAR UTF-8\n0 @I1@ INDI\n1 NAME A /B/\n")
	dbPath := filepath.Join(dir, "tree.db")

	var out bytes.Buffer
	err := executeImport(context.Background(), config.Default(), dir, path, importFlags{db: dbPath, quiet: true}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unchanged")
	assert.Contains(t, err.Error(), "TRLR record missing")

	out.Reset()
	require.NoError(t, executeCheck(context.Background(), config.Default(), dbPath, "", &out))
	assert.Contains(t, out.String(), "person      0")
}

func TestExecuteImport_InvalidCharset(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	err := executeImport(context.Background(), config.Default(), dir, filepath.Join(dir, "missing.ged"), importFlags{charset: "KLINGON"}, &out)
	assert.ErrorIs(t, err, config.ErrInvalidCharset)
}

func TestExecuteScan(t *testing.T) {
	dir := t.TempDir()
	path := writeGedcom(t, dir, sampleGedcom)

	var out bytes.Buffer
	require.NoError(t, executeScan(path, 0, &out))

	s := out.String()
	assert.Contains(t, s, "Detected:    not detected")
	assert.Contains(t, s, "Declared:    UTF-8")
	assert.Contains(t, s, "Decoding as: UTF-8")
	assert.Contains(t, s, "Lines:       22 (0 malformed)")
	assert.Contains(t, s, "People:      3")
	assert.Contains(t, s, "Families:    1")
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		123456:  "123,456",
		1234567: "1,234,567",
		-1234:   "-1,234",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNumber(in), in)
	}
}
