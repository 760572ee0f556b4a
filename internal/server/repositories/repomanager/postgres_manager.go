// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/migrations"
	"github.com/ospinae/termledger/internal/server/repositories/auditlogs"
	"github.com/ospinae/termledger/internal/server/repositories/banks"
	"github.com/ospinae/termledger/internal/server/repositories/concepts"
	"github.com/ospinae/termledger/internal/server/repositories/globalconfig"
	"github.com/ospinae/termledger/internal/server/repositories/reversals"
	"github.com/ospinae/termledger/internal/server/repositories/transactions"
	"github.com/ospinae/termledger/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Banks(db dbx.DBTX) banks.Repository {
	return banks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Concepts(db dbx.DBTX) concepts.Repository {
	return concepts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reversals(db dbx.DBTX) reversals.Repository {
	return reversals.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) AuditLogs(db dbx.DBTX) auditlogs.Repository {
	return auditlogs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) GlobalConfig(db dbx.DBTX) globalconfig.Repository {
	return globalconfig.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
