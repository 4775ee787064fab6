package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps the sql.DB pool together with the dialect it speaks.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// New opens a pool for the given dialect and verifies it with a ping.
// A nil opts keeps the database/sql defaults.
func New(ctx context.Context, dialect Dialect, dsn string, opts *Options) (*DB, error) {
	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if opts != nil {
		if opts.MaxOpenConns > 0 {
			conn.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			conn.SetMaxIdleConns(opts.MaxIdleConns)
		}
		if opts.ConnMaxLifetime > 0 {
			conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
		}
	}

	// every connection to a private in-memory sqlite database sees its own empty
	// database, so the pool is pinned to a single long-lived connection
	if dialect == SQLite && isMemoryDSN(dsn) {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &DB{conn: conn, dialect: dialect}, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Close closes the pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Dialect reports the store dialect.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Ping checks that a connection can be acquired.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Exec executes a statement
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.dialect.Rebind(query), args...)
}

// QueryRow executes a query that is expected to return at most one row
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.dialect.Rebind(query), args...)
}

// QueryRows executes a query returning rows; the caller must close them.
func (db *DB) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.dialect.Rebind(query), args...)
}

// InsertID runs an INSERT and returns the generated id. PostgreSQL has no
// LastInsertId, so the statement is extended with RETURNING id there.
func (db *DB) InsertID(ctx context.Context, query string, args ...any) (int64, error) {
	if db.dialect == Postgres {
		var id int64
		if err := db.QueryRow(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// GetConn returns the underlying sql.DB
func (db *DB) GetConn() *sql.DB {
	return db.conn
}
