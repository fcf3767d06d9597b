package repository

import "github.com/tu-usuario/distribuidora-pro/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	HasPurchaseOrders(id string) (bool, error)
	Delete(id string) error
}
