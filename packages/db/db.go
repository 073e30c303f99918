// Package db records request/response exchanges in a SQLite history file.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id  TEXT    NOT NULL DEFAULT '',
	method      TEXT    NOT NULL,
	address     TEXT    NOT NULL,
	route       TEXT    NOT NULL,
	status      INTEGER NOT NULL DEFAULT 0,
	bytes       INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error       TEXT    NOT NULL DEFAULT '',
	created_at  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_exchanges_created_at ON exchanges (created_at);
`

// DefaultLimit is the number of entries List returns when limit is not positive.
const DefaultLimit = 20

// Entry is one recorded exchange.
type Entry struct {
	ID         int64
	RequestID  string
	Method     string
	Address    string
	Route      string
	Status     int
	Bytes      int
	DurationMs int64
	Error      string
	CreatedAt  time.Time
}

// Client wraps the history database
type Client struct {
	db           *sql.DB
	dataSource   string
	queryTimeout time.Duration
}

// NewClient opens (creating if needed) the history database at path and
// migrates its schema. Accepted forms: sqlite://path, sqlite:path, path.
func NewClient(connectionString string) (*Client, error) {
	dsn, err := parseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY from concurrent bench workers.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	return &Client{
		db:           db,
		dataSource:   dsn,
		queryTimeout: 30 * time.Second,
	}, nil
}

// Close closes the database connection
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the database file in use.
func (c *Client) Path() string {
	return c.dataSource
}

// Record inserts e and returns its id. A zero CreatedAt is set to now.
func (c *Client) Record(ctx context.Context, e Entry) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := c.db.ExecContext(ctx,
		`INSERT INTO exchanges (request_id, method, address, route, status, bytes, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RequestID, e.Method, e.Address, e.Route, e.Status, e.Bytes, e.DurationMs, e.Error,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("record exchange: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit entries, newest first.
func (c *Client) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, request_id, method, address, route, status, bytes, duration_ms, error, created_at
		 FROM exchanges ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Method, &e.Address, &e.Route,
			&e.Status, &e.Bytes, &e.DurationMs, &e.Error, &created); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Count returns the number of recorded exchanges.
func (c *Client) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exchanges`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count exchanges: %w", err)
	}
	return n, nil
}

// Clear deletes every recorded exchange.
func (c *Client) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	if _, err := c.db.ExecContext(ctx, `DELETE FROM exchanges`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// parseConnectionString strips an optional sqlite scheme.
func parseConnectionString(connStr string) (string, error) {
	connStr = strings.TrimSpace(connStr)

	if strings.HasPrefix(connStr, "sqlite://") {
		connStr = strings.TrimPrefix(connStr, "sqlite://")
	} else if strings.HasPrefix(connStr, "sqlite:") {
		connStr = strings.TrimPrefix(connStr, "sqlite:")
	} else if scheme, _, ok := strings.Cut(connStr, "://"); ok {
		return "", fmt.Errorf("unsupported database scheme: %s", scheme)
	}

	if connStr == "" {
		return "", fmt.Errorf("history database path is empty")
	}
	return connStr, nil
}
