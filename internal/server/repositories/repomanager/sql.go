// Package repomanager opens the configured database, applies the embedded
// goose migrations and vends repositories bound to the right SQL dialect.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/credkeeper/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends database/sql backed repositories for a single
// dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	log     logging.Logger
}

type Option func(*SQLRepositoryManager)

// WithLogger routes migration progress to l. Without it goose output is
// discarded.
func WithLogger(l logging.Logger) Option {
	return func(m *SQLRepositoryManager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewRepositoryManager constructs a RepositoryManager for the dialect.
func NewRepositoryManager(dialect dbx.Dialect, opts ...Option) RepositoryManager {
	m := &SQLRepositoryManager{dialect: dialect, log: logging.Nop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect { return m.dialect }

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations. goose keeps its settings in
// package globals, so migrations for different dialects must not run
// concurrently.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, log: m.log.With("module", "migrations")})
	if err := goose.SetDialect(gooseDialect(m.dialect)); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

func gooseDialect(d dbx.Dialect) string {
	if d == dbx.Postgres {
		return "pgx"
	}
	return "sqlite3"
}

// DialectFromDSN picks Postgres for postgres:// URLs and key=value DSNs
// naming a host, SQLite for everything else (file paths and file: URIs).
func DialectFromDSN(dsn string) dbx.Dialect {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return dbx.Postgres
	case strings.Contains(lower, "host=") && strings.Contains(lower, "dbname="):
		return dbx.Postgres
	default:
		return dbx.SQLite
	}
}

func isInMemorySQLite(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Open opens and pings the database named by dsn.
func Open(ctx context.Context, dsn string) (*sql.DB, dbx.Dialect, error) {
	dialect := DialectFromDSN(dsn)

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	// every connection to an in-memory SQLite database sees its own
	// empty database
	if dialect == dbx.SQLite && isInMemorySQLite(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping error: %w", err)
	}

	return db, dialect, nil
}
