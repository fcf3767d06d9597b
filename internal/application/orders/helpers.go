package orders

import (
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/packaging"
)

// parseOwnership interpreta el tipo de tenencia; vacío equivale a OWNED.
func parseOwnership(s string) (entity.OwnershipType, error) {
	switch entity.OwnershipType(s) {
	case "", entity.OwnershipOwned:
		return entity.OwnershipOwned, nil
	case entity.OwnershipConsignment:
		return entity.OwnershipConsignment, nil
	}
	return "", domain.ErrInvalidInput
}

func packagingUnit(s string) (packaging.Unit, error) {
	return packaging.ParseUnit(s)
}
