package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la distribuidora.
// CurrentBalance es saldo firmado: positivo = el cliente debe dinero.
// El saldo solo se muta dentro de las transacciones de confirmación de
// pedidos y de registro de abonos.
type Customer struct {
	ID             string
	Name           string
	TaxID          string // NIT o Cédula
	Phone          string
	Address        string
	PriceListID    string // lista de precios asignada (vacío = ninguna)
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerProductPrice es un precio pactado por cliente y producto, con
// ventana de validez opcional (nil = sin límite).
type CustomerProductPrice struct {
	ID         string
	CustomerID string
	ProductID  string
	Price      decimal.Decimal
	ValidFrom  *time.Time
	ValidTo    *time.Time
	CreatedAt  time.Time
}

// ActiveAt indica si el precio pactado está vigente en el instante dado.
func (p *CustomerProductPrice) ActiveAt(t time.Time) bool {
	if p.ValidFrom != nil && t.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && t.After(*p.ValidTo) {
		return false
	}
	return true
}

// CustomerBrandSizeRule es una regla de precio por marca y formato para un
// cliente (aplica a cualquier producto de esa marca y formato).
type CustomerBrandSizeRule struct {
	ID         string
	CustomerID string
	Brand      string
	Size       string
	Price      decimal.Decimal
	CreatedAt  time.Time
}
