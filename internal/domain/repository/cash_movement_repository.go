package repository

import "github.com/tu-usuario/distribuidora-pro/internal/domain/entity"

// CashMovementRepository define el puerto para el libro de caja.
type CashMovementRepository interface {
	Create(mov *entity.CashMovement) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.CashMovement, error)
	ListByReference(referenceID string) ([]*entity.CashMovement, error)
}
