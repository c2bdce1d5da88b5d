package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Los campos deshabilitados en el formulario de carga toman valores por defecto.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), SessionFrom(c), GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q           query  string  false  "Texto en nombre, marca o código"
// @Param        group       query  string  false  "Grupo"
// @Param        visibility  query  string  false  "visibles (defecto), ocultos, todos"
// @Param        stock       query  string  false  "todos (defecto), bajo, sin"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f dto.ProductFilter
	if ok, err := bindQuery(c, &f); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), SessionFrom(c), GetRole(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateProductRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), SessionFrom(c), GetRole(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  delta suma o resta (nunca baja de 0); set fija la cantidad.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del producto"
// @Param        body  body  dto.StockRequest  true  "delta o set"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.StockRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AdjustStock(c.UserContext(), SessionFrom(c), GetRole(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleVisible godoc
// @Summary      Alternar visibilidad
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/visibility [post]
func (h *ProductHandler) ToggleVisible(c *fiber.Ctx) error {
	out, err := h.uc.ToggleVisible(c.UserContext(), SessionFrom(c), GetRole(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleMissing godoc
// @Summary      Alternar marca de faltante
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/missing [post]
func (h *ProductHandler) ToggleMissing(c *fiber.Ctx) error {
	out, err := h.uc.ToggleMissing(c.UserContext(), SessionFrom(c), GetRole(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ResetMissing godoc
// @Summary      Limpiar faltantes
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResetMissingResponse
// @Router       /api/products/missing/reset [post]
func (h *ProductHandler) ResetMissing(c *fiber.Ctx) error {
	n, err := h.uc.ResetMissing(c.UserContext(), SessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ResetMissingResponse{Reset: n})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), SessionFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Shortlist godoc
// @Summary      Lista de faltantes
// @Description  Productos marcados como faltantes o con stock en o bajo el mínimo.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/shortlist [get]
func (h *ProductHandler) Shortlist(c *fiber.Ctx) error {
	out, err := h.uc.Shortlist(c.UserContext(), SessionFrom(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ShortlistPDF godoc
// @Summary      Lista de faltantes en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/shortlist.pdf [get]
func (h *ProductHandler) ShortlistPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ShortlistPDF(c.UserContext(), SessionFrom(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="faltantes.pdf"`)
	return c.Send(pdf)
}
