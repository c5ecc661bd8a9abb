package scout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAppendAndEntries(t *testing.T) {
	report := NewReport()
	id := ParseIdentifier("106-38-7")

	report.Append(NewReportEntry(id, "chem.example", "data/verified/106-38-7_chem.example.pdf", "https://chem.example/msds.pdf", true))
	report.Append(NewReportEntry(id, "supplier.example", "data/unverified/sheet.pdf", "https://supplier.example/sheet.pdf", false))

	entries := report.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 2, report.Len())

	assert.Equal(t, "106-38-7", entries[0].CAS)
	assert.Empty(t, entries[0].Name)
	assert.True(t, entries[0].Verified)
	assert.Equal(t, "chem.example", entries[0].Provider)
	assert.False(t, entries[1].Verified)

	// Entries returns a copy; mutating it must not touch the report.
	entries[0].Provider = "mutated"
	assert.Equal(t, "chem.example", report.Entries()[0].Provider)
}

func TestReportWriteFile(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		dir := t.TempDir()
		report := NewReport()
		report.Append(NewReportEntry(ParseIdentifier("toluene"), "chem.example", "data/verified/toluene_chem.example.pdf", "https://chem.example/t.pdf", true))

		path, err := report.WriteFile(dir)
		require.NoError(t, err)
		require.NotEmpty(t, path)
		assert.Equal(t, ".json", filepath.Ext(path))

		payload, err := os.ReadFile(path)
		require.NoError(t, err)

		var entries []ReportEntry
		require.NoError(t, json.Unmarshal(payload, &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "toluene", entries[0].Name)
		assert.Equal(t, "https://chem.example/t.pdf", entries[0].URL)
		assert.True(t, entries[0].Verified)
	})

	t.Run("empty report writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		path, err := NewReport().WriteFile(dir)
		require.NoError(t, err)
		assert.Empty(t, path)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("creates directory on demand", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "logs")
		report := NewReport()
		report.Append(NewReportEntry(ParseIdentifier("toluene"), "p", "f.pdf", "https://chem.example/f.pdf", false))

		path, err := report.WriteFile(dir)
		require.NoError(t, err)
		assert.DirExists(t, dir)
		assert.FileExists(t, path)
	})
}
