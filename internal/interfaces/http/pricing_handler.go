package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/application/pricing"
)

// PricingHandler expone la cascada de resolución de precios.
type PricingHandler struct {
	uc *pricing.ResolvePriceUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *pricing.ResolvePriceUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Resolve godoc
// @Summary      Resolver precio recomendado para cliente/producto
// @Description  Cascada HISTORY → CUSTOM → RULE → LIST → BASE; siempre
// @Description  devuelve el nivel que fijó el precio.
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "ID del cliente (vacío = mostrador)"
// @Param        product_id   query  string  true   "ID del producto"
// @Success      200  {object}  dto.ResolvePriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pricing/resolve [get]
func (h *PricingHandler) Resolve(c *fiber.Ctx) error {
	customerID := c.Query("customer_id")
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	price, tier, err := h.uc.Resolve(c.Context(), customerID, productID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ResolvePriceResponse{
		CustomerID: customerID,
		ProductID:  productID,
		Price:      price,
		SourceTier: string(tier),
	})
}
