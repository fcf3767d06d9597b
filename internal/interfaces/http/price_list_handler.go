package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/distribuidora-pro/internal/application/catalog"
	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
)

// PriceListHandler maneja listas de precios (nivel LIST de la cascada).
type PriceListHandler struct {
	uc *catalog.PriceListUseCase
}

// NewPriceListHandler construye el handler.
func NewPriceListHandler(uc *catalog.PriceListUseCase) *PriceListHandler {
	return &PriceListHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lista de precios
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceListRequest  true  "Nombre de la lista"
// @Success      201   {object}  dto.PriceListResponse
// @Router       /api/price-lists [post]
func (h *PriceListHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePriceListRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lista de precios por ID
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la lista"
// @Success      200  {object}  dto.PriceListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id} [get]
func (h *PriceListHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar listas de precios
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PriceListResponse
// @Router       /api/price-lists [get]
func (h *PriceListHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SetItem godoc
// @Summary      Fijar precio de un producto en la lista
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la lista"
// @Param        body  body  dto.SetPriceListItemRequest  true  "Producto y precio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id}/items [put]
func (h *PriceListHandler) SetItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SetPriceListItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetItem(id, in); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
