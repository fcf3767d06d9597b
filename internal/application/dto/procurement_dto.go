package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POLineRequest es una línea al crear una orden de compra.
type POLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
// SupplierKind + SupplierID forman la elección etiquetada marca-o-fábrica.
type CreatePurchaseOrderRequest struct {
	SupplierKind  string          `json:"supplier_kind" validate:"required,oneof=BRAND FACTORY"`
	SupplierID    string          `json:"supplier_id" validate:"required"`
	WarehouseID   string          `json:"warehouse_id" validate:"required"`
	Ownership     string          `json:"ownership,omitempty"` // OWNED (defecto) | CONSIGNMENT
	DeliveryCost  decimal.Decimal `json:"delivery_cost"`
	PaymentAmount decimal.Decimal `json:"payment_amount"` // pagado al crear (conciliación)
	Items         []POLineRequest `json:"items" validate:"required,min=1"`
}

// ReceiptLineRequest es el delta recibido sobre una línea de la orden.
type ReceiptLineRequest struct {
	POItemID string          `json:"po_item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceiveGoodsRequest entrada para una recepción manual (parcial).
type ReceiveGoodsRequest struct {
	Items         []ReceiptLineRequest `json:"items" validate:"required,min=1"`
	PaymentAmount decimal.Decimal      `json:"payment_amount"` // pagado en la recepción
}

// POItemResponse salida de una línea de orden de compra.
type POItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Unit             string          `json:"unit"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Remaining        decimal.Decimal `json:"remaining"`
}

// GoodsReceiptItemResponse salida de una línea de recepción.
type GoodsReceiptItemResponse struct {
	ID          string          `json:"id"`
	POItemID    string          `json:"po_item_id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Pieces      decimal.Decimal `json:"pieces"`
	CartonCount decimal.Decimal `json:"carton_count"`
	PalletCount decimal.Decimal `json:"pallet_count"`
}

// GoodsReceiptResponse salida de un evento de recepción.
type GoodsReceiptResponse struct {
	ID              string                     `json:"id"`
	PurchaseOrderID string                     `json:"purchase_order_id"`
	Date            time.Time                  `json:"date"`
	Items           []GoodsReceiptItemResponse `json:"items"`
}

// PurchaseOrderResponse salida de una orden de compra: agregado mutado +
// deltas de inventario aplicados por la operación.
type PurchaseOrderResponse struct {
	ID            string              `json:"id"`
	SupplierKind  string              `json:"supplier_kind"`
	SupplierID    string              `json:"supplier_id"`
	WarehouseID   string              `json:"warehouse_id"`
	Ownership     string              `json:"ownership"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	DeliveryCost  decimal.Decimal     `json:"delivery_cost"`
	PaymentAmount decimal.Decimal     `json:"payment_amount"`
	Date          time.Time           `json:"date"`
	Items         []POItemResponse    `json:"items"`
	Deltas        []InventoryDeltaDTO `json:"inventory_deltas,omitempty"`
}
