package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La llave es (product_id, warehouse_id, ownership); las filas inexistentes se
// materializan en cero.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func zeroStock(productID, warehouseID string, own entity.OwnershipType) *entity.Stock {
	return &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Ownership:   own,
		OnHand:      decimal.Zero,
		Reserved:    decimal.Zero,
	}
}

// Get obtiene la fila de stock de una llave (producto, bodega, tenencia).
func (r *StockRepo) Get(productID, warehouseID string, own entity.OwnershipType) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, ownership, on_hand, reserved, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2 AND ownership = $3`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, own).Scan(
		&s.ProductID, &s.WarehouseID, &s.Ownership, &s.OnHand, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroStock(productID, warehouseID, own), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID, warehouseID string, own entity.OwnershipType) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, ownership, on_hand, reserved, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2 AND ownership = $3
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, own).Scan(
		&s.ProductID, &s.WarehouseID, &s.Ownership, &s.OnHand, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroStock(productID, warehouseID, own), nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila de la llave.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, ownership, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id, ownership)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, reserved = EXCLUDED.reserved, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.Ownership, stock.OnHand, stock.Reserved,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista las filas de stock de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, ownership, on_hand, reserved, updated_at
		FROM stock WHERE warehouse_id = $1
		ORDER BY product_id, ownership LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Ownership, &s.OnHand, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
