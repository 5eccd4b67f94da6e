// Package store reads v8users rows from a PostgreSQL database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/pkg/v8hash"
)

// Query names the table and columns that hold user records.
type Query struct {
	Table       string
	AdminColumn string
	NameColumn  string
	DataColumn  string
}

// SQL renders the SELECT statement with every identifier quoted. A dotted
// table name is treated as schema.table.
func (q Query) SQL() (string, error) {
	cols := []string{q.AdminColumn, q.NameColumn, q.DataColumn}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		if strings.TrimSpace(c) == "" {
			return "", fmt.Errorf("empty column name in query")
		}
		quoted[i] = pq.QuoteIdentifier(c)
	}
	if strings.TrimSpace(q.Table) == "" {
		return "", fmt.Errorf("empty table name in query")
	}
	parts := strings.Split(q.Table, ".")
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("invalid table name %q", q.Table)
		}
		parts[i] = pq.QuoteIdentifier(p)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), strings.Join(parts, ".")), nil
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Rows iterates the result of a user query.
type Rows struct {
	rows *sql.Rows
}

var _ v8hash.RowSource = (*Rows)(nil)

// Select runs q against db and returns a row iterator.
func Select(ctx context.Context, db *sql.DB, q Query) (*Rows, error) {
	stmt, err := q.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Table, err)
	}
	return &Rows{rows: rows}, nil
}

func (r *Rows) Next() bool { return r.rows.Next() }

// Row scans the current row. bytea columns arrive as []byte, text columns as
// string and NULL as nil.
func (r *Rows) Row() (v8hash.Row, error) {
	var (
		admin any
		name  sql.NullString
		data  any
	)
	if err := r.rows.Scan(&admin, &name, &data); err != nil {
		return v8hash.Row{}, fmt.Errorf("scan row: %w", err)
	}
	return v8hash.Row{Admin: admin, Name: name.String, Data: data}, nil
}

func (r *Rows) Err() error   { return r.rows.Err() }
func (r *Rows) Close() error { return r.rows.Close() }
