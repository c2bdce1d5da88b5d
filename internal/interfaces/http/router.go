package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	SessionUC       *usecase.SessionUseCase
	ProductUC       *usecase.ProductUseCase
	GroupUC         *usecase.GroupUseCase
	ConfigurationUC *usecase.ConfigurationUseCase
	DiscountUC      *usecase.DiscountUseCase
	ProfileUC       *usecase.ProfileUseCase
	Factory         *catalog.Factory
	JWTSecret       string
	Log             zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.Factory).Check)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token; el rol se recalcula desde el perfil)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RefreshRole(deps.AuthUC, deps.Log))
	protected.Get("/auth/me", authHandler.Me)

	sessionHandler := NewSessionHandler(deps.SessionUC)
	protected.Post("/session/load", sessionHandler.Load)

	// Products: las rutas fijas van antes de /:id
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/shortlist", productHandler.Shortlist)
	products.Get("/shortlist.pdf", productHandler.ShortlistPDF)
	products.Post("/missing/reset", productHandler.ResetMissing)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/stock", productHandler.AdjustStock)
	products.Post("/:id/visibility", productHandler.ToggleVisible)
	products.Post("/:id/missing", productHandler.ToggleMissing)

	groups := protected.Group("/groups")
	groupHandler := NewGroupHandler(deps.GroupUC)
	groups.Get("/", groupHandler.List)
	groups.Post("/", groupHandler.Create)
	groups.Delete("/:name", groupHandler.Delete)

	configuration := protected.Group("/configuration")
	configurationHandler := NewConfigurationHandler(deps.ConfigurationUC)
	configuration.Get("/", configurationHandler.Get)
	configuration.Put("/", configurationHandler.Update)

	// Descuentos: sólo para quien ve precios
	discounts := protected.Group("/discounts", RequireRole(entity.RoleAdmin, entity.RoleMayoristaAprobado))
	discountHandler := NewDiscountHandler(deps.DiscountUC)
	discounts.Get("/", discountHandler.List)
	discounts.Put("/:brand", discountHandler.Set)
	discounts.Delete("/:brand", discountHandler.Delete)

	// Admin
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.ProfileUC)
	admin.Get("/profiles", adminHandler.ListProfiles)
	admin.Post("/profiles/:id/approve", adminHandler.Approve)
	admin.Post("/profiles/:id/revoke", adminHandler.Revoke)
}
