package repository

import "github.com/tu-usuario/distribuidora-pro/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// HasReferences indica si existen líneas de pedido, de compra o
	// movimientos históricos que referencien el producto (bloquea el borrado).
	HasReferences(id string) (bool, error)
	Delete(id string) error
}
