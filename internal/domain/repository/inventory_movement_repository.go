package repository

import "github.com/tu-usuario/distribuidora-pro/internal/domain/entity"

// InventoryMovementRepository define el puerto para el registro auditable de
// movimientos de inventario.
type InventoryMovementRepository interface {
	Create(mov *entity.InventoryMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
