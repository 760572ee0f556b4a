package repomanager

import (
	"context"
	"database/sql"

	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/repositories/auditlogs"
	"github.com/ospinae/termledger/internal/server/repositories/banks"
	"github.com/ospinae/termledger/internal/server/repositories/concepts"
	"github.com/ospinae/termledger/internal/server/repositories/globalconfig"
	"github.com/ospinae/termledger/internal/server/repositories/reversals"
	"github.com/ospinae/termledger/internal/server/repositories/transactions"
	"github.com/ospinae/termledger/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either a *sql.DB or a
// transaction handle, so services can compose several repositories inside
// one unit of work.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Banks(db dbx.DBTX) banks.Repository
	Concepts(db dbx.DBTX) concepts.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Reversals(db dbx.DBTX) reversals.Repository
	AuditLogs(db dbx.DBTX) auditlogs.Repository
	GlobalConfig(db dbx.DBTX) globalconfig.Repository
}
