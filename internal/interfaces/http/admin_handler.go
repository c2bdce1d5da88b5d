package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// AdminHandler gestiona las solicitudes de acceso a precios mayoristas (sólo admin).
type AdminHandler struct {
	uc *usecase.ProfileUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.ProfileUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListProfiles godoc
// @Summary      Listar perfiles
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendiente o autorizado"
// @Param        limit   query  int     false  "Límite (defecto 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProfileListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/profiles [get]
func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	var in dto.ProfileListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.DefaultPage()
	if ok, err := validateStruct(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Autorizar perfil
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/profiles/{id}/approve [post]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Revoke godoc
// @Summary      Revocar perfil
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/profiles/{id}/revoke [post]
func (h *AdminHandler) Revoke(c *fiber.Ctx) error {
	out, err := h.uc.Revoke(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
