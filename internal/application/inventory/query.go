// Package inventory expone las consultas de existencias y del historial de
// movimientos. Las mutaciones de stock viven en los ciclos de vida de venta
// y de compra; aquí solo hay lecturas.
package inventory

import (
	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// QueryUseCase lecturas de inventario.
type QueryUseCase struct {
	stockRepo     repository.StockRepository
	movRepo       repository.InventoryMovementRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryUseCase construye el caso de uso de consultas de inventario.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
	warehouseRepo repository.WarehouseRepository,
) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo, warehouseRepo: warehouseRepo}
}

// StockByWarehouse devuelve las existencias de una bodega (en piezas).
func (uc *QueryUseCase) StockByWarehouse(warehouseID string, page dto.PageRequest) ([]*dto.StockResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	page.DefaultPage()
	rows, err := uc.stockRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, &dto.StockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Ownership:   string(s.Ownership),
			OnHand:      s.OnHand,
			Reserved:    s.Reserved,
			Available:   s.Available(),
		})
	}
	return out, nil
}

// MovementsByProduct devuelve el historial de movimientos de un producto,
// más reciente primero.
func (uc *QueryUseCase) MovementsByProduct(productID string, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	page.DefaultPage()
	movements, err := uc.movRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, &dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Ownership:     string(m.Ownership),
			Type:          m.Type,
			Quantity:      m.Quantity,
			Date:          m.Date,
			CreatedBy:     m.CreatedBy,
		})
	}
	return out, nil
}
