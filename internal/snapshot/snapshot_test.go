package snapshot

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlang-tools/semgraph/internal/graph"
	"github.com/vlang-tools/semgraph/internal/report"
)

func TestExport_WritesFilesSymbolsAndScopesTables(t *testing.T) {
	t.Parallel()
	store := graph.NewStore(report.NewCollectingSink())
	fileID := store.InsertFilePath("pkg/a.go")
	_, err := store.RegisterSymbol(graph.Symbol{
		Name: "Widget", Kind: graph.KindStruct, FileID: fileID, FileVersion: 1,
	})
	require.NoError(t, err)
	store.Scopes.OpenFileRootScope(fileID, 0, 100)

	dbPath := filepath.Join(t.TempDir(), "snap.db")
	require.NoError(t, Export(store, dbPath))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var fileCount, symbolCount, scopeCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM files").Scan(&fileCount))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM symbols").Scan(&symbolCount))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM scopes").Scan(&scopeCount))

	assert.Equal(t, 1, fileCount)
	assert.Equal(t, 1, symbolCount)
	assert.Equal(t, 1, scopeCount)

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM symbols WHERE id = ?", 0).Scan(&name))
	assert.Equal(t, "Widget", name)
}

func TestExport_TruncatesPreviousSnapshotOnReExport(t *testing.T) {
	t.Parallel()
	store := graph.NewStore(report.NewCollectingSink())
	store.InsertFilePath("pkg/a.go")
	dbPath := filepath.Join(t.TempDir(), "snap.db")
	require.NoError(t, Export(store, dbPath))

	empty := graph.NewStore(report.NewCollectingSink())
	require.NoError(t, Export(empty, dbPath))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var fileCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM files").Scan(&fileCount))
	assert.Equal(t, 0, fileCount)
}

func TestExport_ReturnsErrorForUnwritablePath(t *testing.T) {
	t.Parallel()
	store := graph.NewStore(report.NewCollectingSink())

	err := Export(store, "/nonexistent-directory-for-sure/snap.db")
	assert.Error(t, err)
}
