package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/api/http/handlers"
	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Solicitations  *handlers.SolicitationsHandler
	Catalog        *handlers.CatalogHandler
	Users          *handlers.UsersHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every protected route is gated by one
// module/action pair from the permission table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/session", cfg.AuthMiddleware.Handle, cfg.Auth.Session)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	solicitacoes := api.Group("/solicitacoes")
	solicitacoes.Get("/", auth.RequirePermission(auth.ModuleSolicitacoes, auth.ActionView), cfg.Solicitations.List)
	solicitacoes.Post("/", auth.RequirePermission(auth.ModuleSolicitacoes, auth.ActionCreate), cfg.Solicitations.Create)
	solicitacoes.Get("/:id", auth.RequirePermission(auth.ModuleSolicitacoes, auth.ActionView), cfg.Solicitations.Get)
	solicitacoes.Put("/:id", auth.RequirePermission(auth.ModuleSolicitacoes, auth.ActionEdit), cfg.Solicitations.Update)
	solicitacoes.Delete("/:id", auth.RequirePermission(auth.ModuleSolicitacoes, auth.ActionDelete), cfg.Solicitations.Delete)
	// Transition permissions depend on the target status; the service
	// checks them against the table.
	solicitacoes.Post("/:id/status", auth.RequirePermission(auth.ModuleSolicitacoes, auth.ActionView), cfg.Solicitations.Transition)

	pecas := api.Group("/pecas", auth.RequirePermission(auth.ModuleCadastros, auth.ActionView))
	pecas.Get("/", cfg.Catalog.ListParts)
	pecas.Get("/search", cfg.Catalog.SearchParts)
	pecas.Get("/recentes", cfg.Catalog.RecentParts)
	pecas.Post("/", auth.RequirePermission(auth.ModuleCadastros, auth.ActionCreate), cfg.Catalog.CreatePart)
	pecas.Put("/:id", auth.RequirePermission(auth.ModuleCadastros, auth.ActionEdit), cfg.Catalog.UpdatePart)
	pecas.Delete("/:id", auth.RequirePermission(auth.ModuleCadastros, auth.ActionDelete), cfg.Catalog.DeletePart)

	tecnicos := api.Group("/tecnicos", auth.RequirePermission(auth.ModuleCadastros, auth.ActionView))
	tecnicos.Get("/", cfg.Catalog.ListTechnicians)
	tecnicos.Post("/", auth.RequirePermission(auth.ModuleCadastros, auth.ActionCreate), cfg.Catalog.CreateTechnician)
	tecnicos.Put("/:id", auth.RequirePermission(auth.ModuleCadastros, auth.ActionEdit), cfg.Catalog.UpdateTechnician)
	tecnicos.Delete("/:id", auth.RequirePermission(auth.ModuleCadastros, auth.ActionDelete), cfg.Catalog.DeleteTechnician)

	fornecedores := api.Group("/fornecedores", auth.RequirePermission(auth.ModuleCadastros, auth.ActionView))
	fornecedores.Get("/", cfg.Catalog.ListSuppliers)
	fornecedores.Post("/", auth.RequirePermission(auth.ModuleCadastros, auth.ActionCreate), cfg.Catalog.CreateSupplier)
	fornecedores.Put("/:id", auth.RequirePermission(auth.ModuleCadastros, auth.ActionEdit), cfg.Catalog.UpdateSupplier)
	fornecedores.Delete("/:id", auth.RequirePermission(auth.ModuleCadastros, auth.ActionDelete), cfg.Catalog.DeleteSupplier)

	usuarios := api.Group("/usuarios", auth.RequireRole(domain.RoleAdministrador))
	usuarios.Get("/", cfg.Users.List)
	usuarios.Post("/", cfg.Users.Create)
	usuarios.Put("/:id", cfg.Users.Update)
	usuarios.Delete("/:id", cfg.Users.Delete)

	api.Get("/estatisticas", auth.RequirePermission(auth.ModuleDashboard, ""), cfg.Reports.Statistics)
	api.Get("/relatorios/solicitacoes", auth.RequirePermission(auth.ModuleRelatorios, auth.ActionExport), cfg.Reports.ExportFeed)

	api.Get("/configuracoes", auth.RequirePermission(auth.ModuleConfiguracoes, auth.ActionView), cfg.Reports.GetSettings)
	api.Put("/configuracoes", auth.RequirePermission(auth.ModuleConfiguracoes, auth.ActionEdit), cfg.Reports.UpdateSettings)
}
