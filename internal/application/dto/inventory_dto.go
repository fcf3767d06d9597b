package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse salida de una fila de inventario (cantidades en piezas).
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Ownership   string          `json:"ownership"`
	OnHand      decimal.Decimal `json:"quantity_on_hand"`
	Reserved    decimal.Decimal `json:"quantity_reserved"`
	Available   decimal.Decimal `json:"available"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Ownership     string          `json:"ownership"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by"`
}
