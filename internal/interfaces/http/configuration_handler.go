package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// ConfigurationHandler maneja la configuración del usuario.
type ConfigurationHandler struct {
	uc *usecase.ConfigurationUseCase
}

// NewConfigurationHandler construye el handler.
func NewConfigurationHandler(uc *usecase.ConfigurationUseCase) *ConfigurationHandler {
	return &ConfigurationHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener configuración
// @Tags         configuration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConfigurationResponse
// @Router       /api/configuration [get]
func (h *ConfigurationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), SessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración
// @Tags         configuration
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateConfigurationRequest  true  "Stock mínimo y campos del formulario"
// @Success      200   {object}  dto.ConfigurationResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/configuration [put]
func (h *ConfigurationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateConfigurationRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), SessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
