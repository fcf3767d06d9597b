package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceList es una lista de precios asignable a clientes.
type PriceList struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceListItem es el precio de un producto dentro de una lista.
type PriceListItem struct {
	PriceListID string
	ProductID   string
	Price       decimal.Decimal
	UpdatedAt   time.Time
}
