package repository

import "github.com/tu-usuario/distribuidora-pro/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el inventario
// por llave (producto, bodega, tenencia). Usado dentro de transacciones para
// garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string, ownership entity.OwnershipType) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); las filas
	// inexistentes se materializan en cero.
	GetForUpdate(productID, warehouseID string, ownership entity.OwnershipType) (*entity.Stock, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error)
}
