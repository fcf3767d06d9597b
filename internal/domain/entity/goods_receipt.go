package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt es un evento de recepción de mercancía contra una orden de
// compra: aplica deltas a los ítems de la orden y al inventario, atómicamente.
type GoodsReceipt struct {
	ID              string
	PurchaseOrderID string
	Date            time.Time
	CreatedBy       string
	Items           []GoodsReceiptItem
}

// GoodsReceiptItem es el delta recibido sobre una línea de la orden.
// Quantity está en la unidad del ítem; Pieces, CartonCount y PalletCount se
// derivan con el motor de empaques (misma normalización que el lado de ventas).
type GoodsReceiptItem struct {
	ID          string
	ReceiptID   string
	POItemID    string
	ProductID   string
	Quantity    decimal.Decimal
	Pieces      decimal.Decimal
	CartonCount decimal.Decimal
	PalletCount decimal.Decimal
}
