package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categories-api/internal/application/auth"
	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC     *category.UseCase
	AuthUC         *auth.AuthUseCase // nil = sin login ni rutas protegidas
	Uploads        ObjectOpener      // nil = no se sirven imágenes
	JWTSecret      string
	MaxImageBytes  int64
	DebugEndpoints bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Escrituras protegidas solo si hay JWT configurado
	authn := func(c *fiber.Ctx) error { return c.Next() }
	adminOnly := authn
	if deps.JWTSecret != "" && deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)

		authn = AuthMiddleware(deps.JWTSecret)
		adminOnly = RequireRole(jwt.RoleAdmin)
	}

	categories := api.Group("/categories")
	h := NewCategoryHandler(deps.CategoryUC, deps.MaxImageBytes)

	// Diagnóstico (antes de /:id)
	if deps.DebugEndpoints {
		dbg := NewDebugHandler(deps.CategoryUC)
		categories.Get("/_debug/count", authn, adminOnly, dbg.Count)
		categories.Post("/_debug/probe", authn, adminOnly, dbg.Probe)
	}

	categories.Post("/", authn, adminOnly, h.Create)
	categories.Get("/", h.List)
	categories.Get("/export.pdf", h.ExportPDF)
	categories.Get("/:id", h.GetByID)
	categories.Put("/:id", authn, adminOnly, h.Update)
	categories.Delete("/:id", authn, adminOnly, h.Delete)

	if deps.Uploads != nil {
		uploads := NewUploadsHandler(deps.Uploads)
		app.Get("/uploads/:key", uploads.Serve)
	}
}
