package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/packaging"
)

// OrderStatus es el estado de un pedido de venta.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo valida la máquina de estados del pedido:
// PENDING → {CONFIRMED, CANCELLED}; CONFIRMED → DELIVERED.
// DELIVERED y CANCELLED son terminales; nunca se reingresa a PENDING.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusDelivered
	}
	return false
}

// Order es un pedido de venta. CustomerID vacío indica venta de mostrador
// (WalkInName identifica al comprador y no hay efecto sobre cartera).
// El estado solo se muta a través del ciclo de vida; se elimina solo en PENDING.
type Order struct {
	ID            string
	CustomerID    string
	WalkInName    string
	WarehouseID   string
	Ownership     OwnershipType
	Status        OrderStatus
	TotalAmount   decimal.Decimal
	PaymentAmount decimal.Decimal
	PaymentMethod string
	Date          time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItem
}

// OrderItem es una línea de pedido. Quantity está en Unit; Pieces es el
// pivote canónico usado para reservar y consumir inventario. PalletCount y
// CartonCount se desnormalizan para presentación y reserva proporcional.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	Unit        packaging.Unit
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Pieces      decimal.Decimal
	CartonCount decimal.Decimal
	PalletCount decimal.Decimal
	PriceSource string // nivel de la cascada que fijó el precio (auditoría)
}
