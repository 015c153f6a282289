// Package database provides the sqlite-backed meeting store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// DefaultPingTimeout bounds the initial connectivity check.
const DefaultPingTimeout = 5 * time.Second

// schema creates the meetings and attendees tables. The UNIQUE constraint on
// (date, location, source_url) is a second line of defense behind the
// duplicate resolver.
const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	location TEXT,
	meeting_type TEXT,
	source_url TEXT,
	source_publication TEXT,
	date_added TEXT NOT NULL,
	notes TEXT,
	source_urls TEXT,
	source_count INTEGER DEFAULT 1,
	UNIQUE(date, location, source_url)
);

CREATE TABLE IF NOT EXISTS attendees (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	meeting_id INTEGER,
	name TEXT NOT NULL,
	title TEXT,
	company TEXT,
	primary_industry TEXT,
	secondary_industries TEXT,
	confidence_level TEXT,
	confidence_reasons TEXT,
	requires_review BOOLEAN,
	FOREIGN KEY (meeting_id) REFERENCES meetings (id)
);

CREATE INDEX IF NOT EXISTS idx_meetings_source_url ON meetings (source_url);
CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings (date);
CREATE INDEX IF NOT EXISTS idx_attendees_meeting_id ON attendees (meeting_id);
`

// NewSQLiteConnection opens (and if necessary creates) the sqlite database
// at path and applies the schema. Use ":memory:" for tests.
func NewSQLiteConnection(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// sqlite allows a single writer; serialize access through one
	// connection rather than surfacing SQLITE_BUSY to callers.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", pingErr)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
