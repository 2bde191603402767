package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id                  INTEGER PRIMARY KEY,
    item_code           TEXT NOT NULL UNIQUE,
    name                TEXT NOT NULL,
    category            TEXT,
    quantity            INTEGER NOT NULL DEFAULT 0,
    location            TEXT,
    date_of_procurement DATE NOT NULL,
    disposal_status     TEXT NOT NULL DEFAULT 'Active',
    notes               TEXT,
    photo               BLOB,
    photo_mime          TEXT,
    created_at          DATETIME NOT NULL,
    updated_at          DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);
CREATE INDEX IF NOT EXISTS idx_items_updated ON items(updated_at);
CREATE INDEX IF NOT EXISTS idx_items_procurement ON items(date_of_procurement);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
