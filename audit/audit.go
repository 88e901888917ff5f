package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Entry is one recorded gateway request.
type Entry struct {
	ID         int64
	Time       time.Time
	Method     string
	Path       string
	RemoteAddr string
	Status     int
	Format     string
	Duration   time.Duration
}

// Log is a SQLite-backed request log.
type Log struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS gateway_requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	method TEXT NOT NULL,
	path TEXT NOT NULL,
	remote_addr TEXT NOT NULL,
	status INTEGER NOT NULL,
	format TEXT NOT NULL,
	duration_us INTEGER NOT NULL
)`

// Open opens (creating if necessary) the audit database at path.
func Open(ctx context.Context, path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create audit table: %w", err)
	}

	return &Log{db: db}, nil
}

// Record appends one entry to the log.
func (l *Log) Record(ctx context.Context, e Entry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO gateway_requests (ts, method, path, remote_addr, status, format, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UTC().Format(time.RFC3339Nano),
		e.Method,
		e.Path,
		e.RemoteAddr,
		e.Status,
		e.Format,
		e.Duration.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, ts, method, path, remote_addr, status, format, duration_us
		 FROM gateway_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		var durationUS int64
		if err := rows.Scan(&e.ID, &ts, &e.Method, &e.Path, &e.RemoteAddr, &e.Status, &e.Format, &durationUS); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse audit timestamp: %w", err)
		}
		e.Duration = time.Duration(durationUS) * time.Microsecond
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
