package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/miniapp-api/internal/application/auth"
	"github.com/jhoicas/miniapp-api/internal/application/notification"
	"github.com/jhoicas/miniapp-api/internal/application/usecase"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	NotificationUC *notification.UseCase
	SalesUC        *usecase.SalesUseCase
	ProcessUC      *usecase.ProcessUseCase
	UserUC         *usecase.UserUseCase
	AuditUC        *usecase.AuditUseCase
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: el login es público; /me exige token.
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/telegram", authHandler.LoginTelegram)
	authGroup.Get("/me", AuthMiddleware(deps.AuthUC, deps.Log), authHandler.Me)

	// Rutas protegidas: toda la API de negocio exige el token de sesión.
	protected := api.Group("/", AuthMiddleware(deps.AuthUC, deps.Log))

	// Notificaciones: lectura y gestión propia para cualquier rol; la
	// creación (dirigida y por rol) es solo de admin.
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC, deps.Log)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/mark-read/:id", notificationHandler.MarkRead)
	notifications.Post("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.Delete("/:id", notificationHandler.Delete)
	notifications.Post("/create", RequireRole(entity.RoleAdmin), notificationHandler.Create)
	notifications.Post("/create-for-role", RequireRole(entity.RoleAdmin), notificationHandler.CreateForRole)

	// Ventas: consulta para cualquier rol autenticado.
	sales := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC, deps.Log)
	sales.Get("/", salesHandler.GetSales)
	sales.Get("/stores", salesHandler.GetStores)
	sales.Get("/warehouses", salesHandler.GetWarehouses)
	sales.Get("/report", salesHandler.ReportPDF)

	// Procesos 1C: manager o admin.
	processes := protected.Group("/processes", RequireRole(entity.RoleAdmin, entity.RoleManager))
	processHandler := NewProcessHandler(deps.ProcessUC, deps.Log)
	processes.Post("/run", processHandler.Run)
	processes.Post("/update-stock", processHandler.UpdateStock)
	processes.Post("/generate-report", processHandler.GenerateReport)

	// Administración de usuarios: solo admin.
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC, deps.AuditUC, deps.Log)
	users.Get("/", userHandler.List)
	users.Patch("/:id", userHandler.Update)
	users.Get("/:id/actions", userHandler.Actions)
}
