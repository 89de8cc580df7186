package store

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens the device-local SQLite file and enables foreign keys.
// A single connection keeps writes serialized.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
