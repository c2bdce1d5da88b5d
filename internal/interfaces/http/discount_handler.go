package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// DiscountHandler maneja los descuentos por marca del usuario.
type DiscountHandler struct {
	uc *usecase.DiscountUseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *usecase.DiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// List godoc
// @Summary      Listar descuentos por marca
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DiscountListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/discounts [get]
func (h *DiscountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), SessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Fijar descuento de una marca
// @Description  Porcentaje entre 0 y 100; 0 quita el descuento.
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        brand  path  string                  true  "Marca"
// @Param        body   body  dto.SetDiscountRequest  true  "Porcentaje"
// @Success      200    {object}  dto.DiscountListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/discounts/{brand} [put]
func (h *DiscountHandler) Set(c *fiber.Ctx) error {
	brand, err := decodeParam(c, "brand")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "marca inválida"})
	}
	var in dto.SetDiscountRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Set(c.UserContext(), SessionFrom(c), brand, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Quitar descuento de una marca
// @Tags         discounts
// @Security     Bearer
// @Param        brand  path  string  true  "Marca"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/discounts/{brand} [delete]
func (h *DiscountHandler) Delete(c *fiber.Ctx) error {
	brand, err := decodeParam(c, "brand")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "marca inválida"})
	}
	if err := h.uc.Delete(c.UserContext(), SessionFrom(c), brand); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
