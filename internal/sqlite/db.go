// Package sqlite provides a SQLite-backed implementation of the remote
// collection store, used for local deployments and tests.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the collection tables.
func (db *DB) RunMigrations() error {
	migration := `
-- Cash accounts
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    opening_balance TEXT NOT NULL DEFAULT '0',
    created_at TEXT NOT NULL
);

-- Titular members
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    document_number TEXT NOT NULL DEFAULT '',
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    district TEXT NOT NULL DEFAULT '',
    province TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    birth_date TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    economic_status TEXT NOT NULL DEFAULT ''
        CHECK(economic_status IN ('', 'low_income', 'extreme_low_income')),
    created_at TEXT NOT NULL
);
-- Document numbers are unique when present; unverified members leave it empty.
CREATE UNIQUE INDEX IF NOT EXISTS idx_member_document ON members(document_number)
    WHERE document_number <> '';

-- Income receipts, referencing members by document number
CREATE TABLE IF NOT EXISTS income_events (
    id TEXT PRIMARY KEY,
    member_document TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('dues', 'donation', 'event', 'other')),
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    account_id TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (account_id) REFERENCES accounts(id)
);
CREATE INDEX IF NOT EXISTS idx_income_member ON income_events(member_document);
CREATE INDEX IF NOT EXISTS idx_income_account ON income_events(account_id);

-- Expenses
CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    account_id TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (account_id) REFERENCES accounts(id)
);
CREATE INDEX IF NOT EXISTS idx_expense_account ON expenses(account_id);

-- Collaborators
CREATE TABLE IF NOT EXISTS collaborators (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    document_number TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
