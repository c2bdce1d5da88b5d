package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// SessionHandler carga el estado inicial de la sesión (productos, grupos, configuración).
type SessionHandler struct {
	uc *usecase.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Load godoc
// @Summary      Cargar sesión
// @Description  Lista productos, grupos y configuración. Si el backend remoto está vacío y existen datos locales heredados, los migra una vez.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Param        X-Sync-Mode  header  string  false  "offline para trabajar sólo con el caché local"
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session/load [post]
func (h *SessionHandler) Load(c *fiber.Ctx) error {
	out, err := h.uc.Load(c.UserContext(), SessionFrom(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
