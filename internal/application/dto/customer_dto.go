package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	TaxID       string `json:"tax_id" validate:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PriceListID string `json:"price_list_id"`
}

// UpdateCustomerRequest entrada para actualizar un cliente (parcial).
// El saldo no se edita por aquí: solo mutan confirmaciones y abonos.
type UpdateCustomerRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	PriceListID *string `json:"price_list_id"`
}

// CustomerResponse salida de un cliente con su saldo actual.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TaxID          string          `json:"tax_id"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	PriceListID    string          `json:"price_list_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SetCustomerPriceRequest entrada para pactar un precio cliente/producto.
type SetCustomerPriceRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	ValidFrom *time.Time      `json:"valid_from,omitempty"`
	ValidTo   *time.Time      `json:"valid_to,omitempty"`
}

// SetBrandSizeRuleRequest entrada para una regla de precio marca/formato.
type SetBrandSizeRuleRequest struct {
	Brand string          `json:"brand" validate:"required"`
	Size  string          `json:"size" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// RegisterPaymentRequest entrada para registrar un abono de cliente.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

// PaymentResponse salida de un abono registrado: movimiento de caja y saldo
// resultante del cliente.
type PaymentResponse struct {
	MovementID string          `json:"movement_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// CashMovementResponse salida de una entrada del libro de caja.
type CashMovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CustomerID  string          `json:"customer_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method,omitempty"`
	Date        time.Time       `json:"date"`
}
