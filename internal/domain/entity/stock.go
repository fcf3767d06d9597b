package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el inventario de un producto en una bodega para un tipo de
// tenencia (llave producto + bodega + tenencia). Cantidades en piezas.
//
// Invariantes: OnHand ≥ 0 y Reserved ≥ 0 siempre. Reserved puede exceder
// OnHand (la reserva puede anteceder la recepción física), pero el consumo al
// confirmar está topado por OnHand.
type Stock struct {
	ProductID   string
	WarehouseID string
	Ownership   OwnershipType
	OnHand      decimal.Decimal
	Reserved    decimal.Decimal
	UpdatedAt   time.Time
}

// Available devuelve la disponibilidad neta (puede ser negativa si la
// política de sobreventa lo permite).
func (s *Stock) Available() decimal.Decimal {
	return s.OnHand.Sub(s.Reserved)
}
