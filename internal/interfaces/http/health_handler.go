package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

// HealthHandler expone el estado del circuito remoto y del caché local.
type HealthHandler struct {
	factory *catalog.Factory
}

// NewHealthHandler construye el handler.
func NewHealthHandler(factory *catalog.Factory) *HealthHandler {
	return &HealthHandler{factory: factory}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	out := dto.HealthResponse{
		Status:        "ok",
		Breaker:       h.factory.Breaker().State().String(),
		CacheDegraded: h.factory.Cache().Degraded(),
	}
	if out.CacheDegraded || h.factory.Breaker().State() == catalog.BreakerOpen {
		out.Status = "degraded"
	}
	return c.JSON(out)
}
