package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashTypeSalePayment     = "SALE_PAYMENT"     // pago recibido al confirmar un pedido
	CashTypeCustomerPayment = "CUSTOMER_PAYMENT" // abono posterior de un cliente
	CashTypePurchasePayment = "PURCHASE_PAYMENT" // pago registrado contra una orden de compra
)

// CashMovement es una entrada del libro de caja. ReferenceID apunta al
// pedido, la orden de compra o el cliente según el tipo.
type CashMovement struct {
	ID          string
	Type        string
	ReferenceID string
	CustomerID  string
	Amount      decimal.Decimal
	Method      string // efectivo, transferencia, etc.
	Date        time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
