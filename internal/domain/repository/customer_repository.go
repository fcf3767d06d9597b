package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer y sus
// precios pactados. Los métodos de saldo se usan solo dentro de transacciones.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTaxID(taxID string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	HasOrders(id string) (bool, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila del cliente (SELECT FOR UPDATE) para
	// actualizar el saldo sin carreras.
	GetForUpdate(id string) (*entity.Customer, error)
	// AddToBalance suma el delta (firmado) al saldo actual del cliente.
	AddToBalance(id string, delta decimal.Decimal) error
}

// CustomerPriceRepository define el puerto para precios pactados por
// cliente/producto y reglas por marca/formato.
type CustomerPriceRepository interface {
	CreateProductPrice(price *entity.CustomerProductPrice) error
	ListProductPrices(customerID, productID string) ([]*entity.CustomerProductPrice, error)
	DeleteProductPrice(id string) error
	CreateBrandSizeRule(rule *entity.CustomerBrandSizeRule) error
	FindBrandSizeRule(customerID, brand, size string) (*entity.CustomerBrandSizeRule, error)
	DeleteBrandSizeRule(id string) error
}
