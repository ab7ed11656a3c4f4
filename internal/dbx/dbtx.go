// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx, and
// the SQL dialect a repository is bound to.
package dbx

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect names a database/sql driver together with its SQL flavour.
type Dialect string

const (
	// Postgres is served by the pgx stdlib driver.
	Postgres Dialect = "pgx"
	// SQLite is served by modernc.org/sqlite.
	SQLite Dialect = "sqlite"
)

// DriverName is the name to pass to sql.Open.
func (d Dialect) DriverName() string { return string(d) }

// Rebind rewrites '?' placeholders into the form the dialect expects.
// Queries must not contain a literal '?'.
//
//	Postgres.Rebind("SELECT 1 WHERE a = ? AND b = ?") // "... a = $1 AND b = $2"
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
