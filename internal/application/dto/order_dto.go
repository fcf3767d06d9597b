package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campos editables de una línea en la sesión de captura.
const (
	LineFieldQuantity = "QUANTITY"
	LineFieldCartons  = "CARTONS"
	LineFieldPallets  = "PALLETS"
	LineFieldUnit     = "UNIT"
)

// LineItemDTO es la línea de trabajo de la sesión de captura: cuatro campos
// mutuamente consistentes (estibas, cajas, cantidad, unidad) más el precio.
// Pieces conserva el pivote a precisión completa; los campos de vista van
// redondeados a 2 decimales.
type LineItemDTO struct {
	ProductID   string          `json:"product_id"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Pieces      decimal.Decimal `json:"pieces"`
	Area        decimal.Decimal `json:"area"`
	Cartons     decimal.Decimal `json:"cartons"`
	Pallets     decimal.Decimal `json:"pallets"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	PriceSource string          `json:"price_source,omitempty"`
}

// BuildLineRequest entrada para construir una línea nueva.
type BuildLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit" validate:"required"`
	// CustomerID opcional: si viene, el precio se resuelve con la cascada.
	CustomerID string `json:"customer_id,omitempty"`
}

// UpdateLineRequest entrada para editar un campo de una línea existente.
// Para ChangedField=UNIT se usa Unit; para los demás campos, Value.
type UpdateLineRequest struct {
	Item         LineItemDTO     `json:"item"`
	ChangedField string          `json:"changed_field" validate:"required,oneof=QUANTITY CARTONS PALLETS UNIT"`
	Value        decimal.Decimal `json:"value"`
	Unit         string          `json:"unit,omitempty"`
}

// OrderLineRequest es una línea al crear o editar un pedido.
// UnitPrice nulo o cero delega el precio a la cascada.
type OrderLineRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Unit      string           `json:"unit" validate:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateOrderRequest entrada para crear un pedido (queda en PENDING y
// reserva inventario). CustomerID vacío exige WalkInName (venta de mostrador).
type CreateOrderRequest struct {
	CustomerID    string             `json:"customer_id,omitempty"`
	WalkInName    string             `json:"walk_in_name,omitempty"`
	WarehouseID   string             `json:"warehouse_id" validate:"required"`
	Ownership     string             `json:"ownership,omitempty"` // OWNED (defecto) | CONSIGNMENT
	PaymentAmount decimal.Decimal    `json:"payment_amount"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1"`
}

// EditOrderRequest entrada para editar un pedido PENDING: reemplaza las
// líneas y recalcula las reservas por delta, atómicamente.
type EditOrderRequest struct {
	Items         []OrderLineRequest `json:"items" validate:"required,min=1"`
	PaymentAmount *decimal.Decimal   `json:"payment_amount,omitempty"`
	PaymentMethod *string            `json:"payment_method,omitempty"`
}

// OrderItemResponse salida de una línea de pedido.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	CartonCount decimal.Decimal `json:"carton_count"`
	PalletCount decimal.Decimal `json:"pallet_count"`
	PriceSource string          `json:"price_source,omitempty"`
}

// InventoryDeltaDTO es el delta de inventario aplicado por una operación del
// ciclo de vida, devuelto al caller para render de la capa de presentación.
type InventoryDeltaDTO struct {
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Ownership     string          `json:"ownership"`
	OnHandDelta   decimal.Decimal `json:"on_hand_delta"`
	ReservedDelta decimal.Decimal `json:"reserved_delta"`
}

// OrderResponse salida de un pedido: agregado mutado + deltas aplicados.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id,omitempty"`
	WalkInName    string              `json:"walk_in_name,omitempty"`
	WarehouseID   string              `json:"warehouse_id"`
	Ownership     string              `json:"ownership"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentAmount decimal.Decimal     `json:"payment_amount"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Date          time.Time           `json:"date"`
	Items         []OrderItemResponse `json:"items"`
	Deltas        []InventoryDeltaDTO `json:"inventory_deltas,omitempty"`
}
