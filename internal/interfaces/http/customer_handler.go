package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/distribuidora-pro/internal/application/catalog"
	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/application/orders"
)

// CustomerHandler maneja clientes, sus precios pactados, reglas por
// marca/formato, abonos y libro de cartera.
type CustomerHandler struct {
	uc        *catalog.CustomerUseCase
	paymentUC *orders.PaymentUseCase
	queryUC   *orders.QueryUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *catalog.CustomerUseCase, paymentUC *orders.PaymentUseCase, queryUC *orders.QueryUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, paymentUC: paymentUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.TaxID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y tax_id son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente (bloqueado si tiene pedidos)
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPrice godoc
// @Summary      Pactar precio cliente/producto (nivel CUSTOM)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.SetCustomerPriceRequest  true  "Precio pactado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/prices [post]
func (h *CustomerHandler) SetPrice(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SetCustomerPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetProductPrice(id, in); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeletePrice godoc
// @Summary      Eliminar un precio pactado
// @Tags         customers
// @Security     Bearer
// @Param        id       path  string  true  "ID del cliente"
// @Param        priceId  path  string  true  "ID del precio pactado"
// @Success      204
// @Router       /api/customers/{id}/prices/{priceId} [delete]
func (h *CustomerHandler) DeletePrice(c *fiber.Ctx) error {
	priceID := c.Params("priceId")
	if priceID == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteProductPrice(priceID); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetRule godoc
// @Summary      Fijar regla de precio marca/formato (nivel RULE)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.SetBrandSizeRuleRequest  true  "Regla marca/formato"
// @Success      204
// @Router       /api/customers/{id}/rules [post]
func (h *CustomerHandler) SetRule(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SetBrandSizeRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetBrandSizeRule(id, in); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteRule godoc
// @Summary      Eliminar una regla marca/formato
// @Tags         customers
// @Security     Bearer
// @Param        id      path  string  true  "ID del cliente"
// @Param        ruleId  path  string  true  "ID de la regla"
// @Success      204
// @Router       /api/customers/{id}/rules/{ruleId} [delete]
func (h *CustomerHandler) DeleteRule(c *fiber.Ctx) error {
	ruleID := c.Params("ruleId")
	if ruleID == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteBrandSizeRule(ruleID); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterPayment godoc
// @Summary      Registrar abono de cliente (baja el saldo de cartera)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.RegisterPaymentRequest  true  "Monto y método"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [post]
func (h *CustomerHandler) RegisterPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.paymentUC.RegisterPayment(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Ledger godoc
// @Summary      Libro de caja del cliente (abonos y pagos de venta)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}  dto.CashMovementResponse
// @Router       /api/customers/{id}/ledger [get]
func (h *CustomerHandler) Ledger(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.queryUC.CustomerLedger(id, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
