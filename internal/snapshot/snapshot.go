// Package snapshot writes a one-way debug dump of a *graph.Store to a
// SQLite file, for the CLI's `dump` command and for developers inspecting
// a stuck workspace state. It is strictly an export: nothing in this
// module ever reads a snapshot back into a Store, so it does not
// contradict §6's "Persisted state: None" — the live semantic graph still
// lives only in process memory.
//
// Grounded on the teacher's internal/store/store.go, whose schemaDDL this
// package's tables are a deliberate subset of (files, symbols, scopes),
// reusing the same mattn/go-sqlite3 driver and WAL-mode connection string.
package snapshot

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vlang-tools/semgraph/internal/graph"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id   INTEGER PRIMARY KEY,
  path TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS symbols (
  id           INTEGER PRIMARY KEY,
  name         TEXT NOT NULL,
  kind         TEXT NOT NULL,
  file_id      INTEGER,
  file_version INTEGER,
  start_row    INTEGER,
  start_col    INTEGER,
  end_row      INTEGER,
  end_col      INTEGER,
  parent       INTEGER,
  return_sym   INTEGER,
  scope        INTEGER
);

CREATE TABLE IF NOT EXISTS scopes (
  id         INTEGER PRIMARY KEY,
  parent_id  INTEGER,
  file_id    INTEGER,
  start_byte INTEGER,
  end_byte   INTEGER
);
`

// Export opens (creating if needed) a SQLite database at dbPath, migrates
// the snapshot schema, and writes the current contents of every live
// symbol and scope in store. Each call truncates the three tables first,
// so a snapshot file always reflects exactly one moment in time.
func Export(store *graph.Store, dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return fmt.Errorf("snapshot: open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("snapshot: migrate: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("snapshot: begin transaction: %w", err)
	}

	if err := exportAll(tx, store); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("snapshot: commit: %w", err)
	}
	return nil
}

func exportAll(tx *sql.Tx, store *graph.Store) error {
	maxFileID := store.FileCount()
	maxSymbolID := store.Symbols.Count()
	maxScopeID := store.Scopes.Count()
	for _, stmt := range []string{"DELETE FROM files", "DELETE FROM symbols", "DELETE FROM scopes"} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("snapshot: clear tables: %w", err)
		}
	}

	for fileID := 0; fileID < maxFileID; fileID++ {
		path := store.FilePath(fileID)
		if path == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO files (id, path) VALUES (?, ?)`, fileID, path); err != nil {
			return fmt.Errorf("snapshot: insert file %d: %w", fileID, err)
		}
	}

	for id := int64(0); id < maxSymbolID; id++ {
		if !store.Symbols.IsValidID(id) {
			continue
		}
		sym := store.Symbols.GetInfo(id)
		_, err := tx.Exec(
			`INSERT INTO symbols (id, name, kind, file_id, file_version, start_row, start_col, end_row, end_col, parent, return_sym, scope)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sym.ID, sym.Name, sym.Kind.String(), sym.FileID, sym.FileVersion,
			sym.Range.StartPoint.Row, sym.Range.StartPoint.Column,
			sym.Range.EndPoint.Row, sym.Range.EndPoint.Column,
			sym.Parent, sym.ReturnSym, sym.Scope,
		)
		if err != nil {
			return fmt.Errorf("snapshot: insert symbol %d: %w", id, err)
		}
	}

	for id := int64(0); id < maxScopeID; id++ {
		if !store.Scopes.IsValidID(id) {
			continue
		}
		sc := store.Scopes.GetInfo(id)
		_, err := tx.Exec(
			`INSERT INTO scopes (id, parent_id, file_id, start_byte, end_byte) VALUES (?, ?, ?, ?, ?)`,
			sc.ID, sc.ParentID, sc.FileID, sc.StartByte, sc.EndByte,
		)
		if err != nil {
			return fmt.Errorf("snapshot: insert scope %d: %w", id, err)
		}
	}

	return nil
}
