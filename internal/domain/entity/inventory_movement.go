package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeSALE     = "SALE"     // consumo al confirmar un pedido
	MovementTypePURCHASE = "PURCHASE" // entrada por recepción de mercancía
)

// InventoryMovement es el registro auditable de cada afectación de stock.
// Quantity está en piezas, firmada: negativa para salidas (SALE), positiva
// para entradas (PURCHASE). TransactionID referencia el pedido o la recepción
// que originó el movimiento.
type InventoryMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	WarehouseID   string
	Ownership     OwnershipType
	Type          string
	Quantity      decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
