// Package httpapi exposes the ledger services over HTTP using Fiber. The
// handlers parse and validate transport concerns only; business rules,
// privilege checks, and audit live in the services.
package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ospinae/termledger/internal/logging"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/services"
)

type Server struct {
	log          logging.Logger
	secretKey    []byte
	users        *services.UserService
	transactions *services.TransactionService
	reversals    *services.ReversalService
	catalog      *services.CatalogService
	globalConfig *services.GlobalConfigService
	archive      *services.ArchiveService
}

func NewServer(
	log logging.Logger,
	secretKey []byte,
	users *services.UserService,
	transactions *services.TransactionService,
	reversals *services.ReversalService,
	catalog *services.CatalogService,
	globalConfig *services.GlobalConfigService,
	archive *services.ArchiveService,
) *Server {
	return &Server{
		log:          log,
		secretKey:    secretKey,
		users:        users,
		transactions: transactions,
		reversals:    reversals,
		catalog:      catalog,
		globalConfig: globalConfig,
		archive:      archive,
	}
}

// App builds the Fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			s.log.Error(c.UserContext(), "unexpected handler error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})

	api := app.Group("/api")

	api.Post("/login", s.handleLogin)

	protected := api.Group("")
	protected.Use(SessionMiddleware(s.secretKey))

	protected.Post("/transactions", s.handleCreateTransaction)
	protected.Get("/transactions", s.handleListTransactions)
	protected.Get("/transactions/:id", s.handleGetTransaction)
	protected.Post("/transactions/:id/reversal-request", s.handleCreateReversal)
	protected.Get("/transactions/:id/reversal-request", s.handleGetReversalByTransaction)

	protected.Get("/banks", s.handleListBanks)
	protected.Get("/concepts", s.handleListConcepts)
	protected.Get("/config", s.handleGetConfig)

	// The hint gate closes admin surfaces early; the services repeat the
	// check against the stored user row.
	board := protected.Group("/reversal-requests", RequireRoleHint(models.RoleAdmin))
	board.Get("", s.handleListPendingReversals)
	board.Post("/:id/resolve", s.handleResolveReversal)

	admin := protected.Group("/admin", RequireRoleHint(models.RoleAdmin))
	admin.Post("/banks", s.handleCreateBank)
	admin.Put("/banks/:id", s.handleUpdateBank)
	admin.Post("/concepts", s.handleCreateConcept)
	admin.Put("/concepts/:id", s.handleUpdateConcept)
	admin.Put("/config", s.handleUpdateConfig)
	admin.Get("/users", s.handleListUsers)

	root := protected.Group("/root", RequireRoleHint(models.RoleRoot))
	root.Post("/users", s.handleRegisterUser)
	root.Post("/users/:id/deactivate", s.handleDeactivateUser)
	root.Post("/audit/export", s.handleExportAudit)

	return app
}
