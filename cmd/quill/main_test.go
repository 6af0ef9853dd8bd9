package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/marcus/quill/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args against a scratch config.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagJSON, flagSearch, flagTag, flagForce = false, "", "", false
	flagConfig, flagDB = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.json")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func seed(t *testing.T) (string, int64) {
	t.Helper()
	db := filepath.Join(t.TempDir(), "notes.db")
	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	id, err := s.Create("Groceries", "milk", "home")
	require.NoError(t, err)
	_, err = s.Create("Report", "quarterly", "work")
	require.NoError(t, err)
	return db, id
}

func TestListJSON(t *testing.T) {
	db, id := seed(t)

	out, err := run(t, "--db", db, "list", "--tag", "home", "--json")
	require.NoError(t, err)

	var notes []store.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, id, notes[0].ID)
	assert.Equal(t, "Groceries", notes[0].Title)
}

func TestListTable(t *testing.T) {
	db, _ := seed(t)

	out, err := run(t, "--db", db, "list", "--search", "quarter")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Report")
	assert.NotContains(t, out, "Groceries")
}

func TestStatsJSON(t *testing.T) {
	db, _ := seed(t)

	out, err := run(t, "--db", db, "stats", "--json")
	require.NoError(t, err)

	var st store.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, store.Stats{Total: 2, Favorites: 0, UniqueTags: 2}, st)
}

func TestExportCommand(t *testing.T) {
	db, id := seed(t)
	path := filepath.Join(t.TempDir(), "g.txt")

	_, err := run(t, "--db", db, "export", strconv.FormatInt(id, 10), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Groceries\n\nmilk", string(data))

	_, err = run(t, "--db", db, "export", "999", path)
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, "--db", db, "export", "abc", path)
	assert.ErrorContains(t, err, "invalid note id")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill", "config.json")

	_, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = run(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")
}
