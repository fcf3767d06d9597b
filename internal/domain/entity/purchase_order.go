package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/packaging"
)

// POStatus es el estado de una orden de compra. PENDING/PARTIAL/RECEIVED se
// derivan de las cantidades recibidas de sus ítems (DeriveStatus); CANCELLED
// es explícito.
type POStatus string

const (
	POStatusPending   POStatus = "PENDING"
	POStatusPartial   POStatus = "PARTIAL"
	POStatusReceived  POStatus = "RECEIVED"
	POStatusCancelled POStatus = "CANCELLED"
)

// OwnershipType indica si el stock es propio o en consignación del proveedor.
// Afecta la llave de inventario y a qué cartera impacta la operación.
type OwnershipType string

const (
	OwnershipOwned       OwnershipType = "OWNED"
	OwnershipConsignment OwnershipType = "CONSIGNMENT"
)

// SupplierKind distingue proveedor marca o fábrica.
type SupplierKind string

const (
	SupplierBrand   SupplierKind = "BRAND"
	SupplierFactory SupplierKind = "FACTORY"
)

// SupplierRef es la elección etiquetada marca-o-fábrica de una orden de
// compra: nunca ambas, nunca ninguna.
type SupplierRef struct {
	Kind SupplierKind
	ID   string
}

// PurchaseOrder es una orden de compra de mercancía entrante.
// PaymentAmount registra lo pagado en la creación o en recepciones para
// conciliación posterior en el histórico de compras.
type PurchaseOrder struct {
	ID            string
	Supplier      SupplierRef
	WarehouseID   string
	Ownership     OwnershipType
	Status        POStatus
	TotalAmount   decimal.Decimal
	DeliveryCost  decimal.Decimal
	PaymentAmount decimal.Decimal
	Date          time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []POItem
}

// POItem es una línea de orden de compra. ReceivedQuantity es acumulado,
// monótono no decreciente y nunca mayor que Quantity (misma unidad).
type POItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	Unit             packaging.Unit
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	ReceivedQuantity decimal.Decimal
}

// Remaining devuelve la cantidad pendiente por recibir.
func (i *POItem) Remaining() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// DeriveStatus calcula el estado de la orden como función pura de sus ítems:
// RECEIVED si todo ítem completó su cantidad; PARTIAL si alguno tiene
// 0 < recibido < pedido; PENDING en otro caso. No considera CANCELLED.
func DeriveStatus(items []POItem) POStatus {
	if len(items) == 0 {
		return POStatusPending
	}
	all := true
	any := false
	for _, it := range items {
		if it.ReceivedQuantity.IsPositive() {
			any = true
		}
		if it.ReceivedQuantity.LessThan(it.Quantity) {
			all = false
		}
	}
	if all {
		return POStatusReceived
	}
	if any {
		return POStatusPartial
	}
	return POStatusPending
}
