package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ne-taxonomy/internal/application/auth"
	"github.com/jhoicas/ne-taxonomy/internal/application/usecase"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	NETypeUC  *usecase.NETypeUseCase
	LabelUC   *usecase.LabelUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/register", adminOnly, authHandler.Register)
	protected.Get("/auth/users", adminOnly, authHandler.ListAccounts)
	protected.Delete("/auth/users/:id", adminOnly, authHandler.DeleteAccount)
	protected.Put("/auth/users/:id/status", adminOnly, authHandler.UpdateStatus)
	protected.Put("/account/password", authHandler.ChangePassword)

	// Taxonomía de tipos de entidades
	neTypes := protected.Group("/ne-types")
	neTypeHandler := NewNETypeHandler(deps.NETypeUC)
	neTypes.Get("/", neTypeHandler.List)
	neTypes.Get("/export/csv", neTypeHandler.ExportCSV)
	neTypes.Get("/export/pdf", neTypeHandler.ExportPDF)
	neTypes.Get("/export/xml", neTypeHandler.ExportXML)
	neTypes.Get("/:code", neTypeHandler.Get)

	// Etiquetas de seudonimización
	labels := protected.Group("/labels")
	labelHandler := NewLabelHandler(deps.LabelUC)
	labels.Get("/", labelHandler.List)
	labels.Post("/", labelHandler.Create)
	labels.Get("/export", adminOnly, labelHandler.Export)
	labels.Post("/import", adminOnly, labelHandler.Import)
	labels.Put("/:id", adminOnly, labelHandler.Update)
	labels.Delete("/:id", adminOnly, labelHandler.Delete)
}
