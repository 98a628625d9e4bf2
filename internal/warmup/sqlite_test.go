package warmup

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastpath/pkg/matcher"
)

func createDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meta.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE entities (
		id INTEGER PRIMARY KEY,
		type TEXT,
		content TEXT,
		file_path TEXT,
		project TEXT
	)`)
	require.NoError(t, err)

	rows := []struct {
		etype, path, project string
		content              any
	}{
		{"EMAIL", "a.md", "kronos", "alice@example.com"},
		{"DECISION", "b.md", "kronos", "Use SQLite for metadata"},
		{"TITLE", "c.md", "atlas", nil},
		{"TITLE", "d.md", "", "Quarterly report"},
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO entities (type, content, file_path, project) VALUES (?, ?, ?, ?)`,
			r.etype, r.content, r.path, r.project)
		require.NoError(t, err)
	}
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := createDB(t)

	entries, err := LoadSQLite(context.Background(), path, 1000)
	require.NoError(t, err)

	assert.Equal(t, []matcher.Entry{
		{Key: "alice@example.com", Content: "alice@example.com"},
		{Key: "Use SQLite for metadata", Content: "Use SQLite for metadata"},
		{Key: "Quarterly report", Content: "Quarterly report"},
		{Key: "atlas", Content: "Project: atlas"},
		{Key: "kronos", Content: "Project: kronos"},
	}, entries)

	e := matcher.New()
	e.InsertAll(entries)
	assert.Equal(t, "Project: kronos", e.Search("KRONOS").Content)
	assert.Equal(t, matcher.PrefixMatch, e.Search("alice@").Kind)
}

func TestLoadSQLiteLimit(t *testing.T) {
	path := createDB(t)

	entries, err := LoadSQLite(context.Background(), path, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alice@example.com", entries[0].Key)
}

func TestLoadSQLiteMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	db.Close()

	_, err = LoadSQLite(context.Background(), path, 10)
	assert.Error(t, err)
}
