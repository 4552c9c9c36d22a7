package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/contable-api/internal/application/analytics"
	"github.com/jhoicas/contable-api/internal/application/auth"
	"github.com/jhoicas/contable-api/internal/application/usecase"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ClientUC    *usecase.ClientUseCase
	QuotationUC *usecase.QuotationUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de una sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	// Clients; los permisos por rol y asignación se resuelven en el núcleo
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/export", clientHandler.Export)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Quotations de un cliente
	quotations := clients.Group("/:id/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/new", quotationHandler.Draft)
	quotations.Get("/export", quotationHandler.Export)
	quotations.Get("/stats", quotationHandler.Stats)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/:qid", quotationHandler.GetByID)
	quotations.Get("/:qid/pdf", quotationHandler.PDF)
	quotations.Put("/:qid", quotationHandler.Update)
	quotations.Delete("/:qid", quotationHandler.Delete)

	// Users: administración solo para Administrador; GET /users/:id queda abierto
	// porque el personal puede leer su propio perfil (lo resuelve el núcleo).
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	adminOnly := RequireRole(entity.RoleAdministrador)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/export", adminOnly, userHandler.Export)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)
	users.Put("/:id/clients", adminOnly, userHandler.SetAssignments)
	users.Post("/:id/clients/:clientId", adminOnly, userHandler.AddAssignment)
	users.Delete("/:id/clients/:clientId", adminOnly, userHandler.RemoveAssignment)
}
