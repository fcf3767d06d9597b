package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/distribuidora-pro/internal/application/orders"
	"github.com/tu-usuario/distribuidora-pro/internal/application/procurement"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

var _ orders.TxRunner = (*TxRunner)(nil)
var _ procurement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrder inicia una transacción con los repos del ciclo de vida de pedidos
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
	customerRepo repository.CustomerRepository,
	cashRepo repository.CashMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewOrderRepository(tx),
		NewStockRepository(tx),
		NewInventoryMovementRepository(tx),
		NewCustomerRepository(tx),
		NewCashMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProcurement inicia una transacción con los repos del ciclo de compras
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunProcurement(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
	cashRepo repository.CashMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPurchaseOrderRepository(tx),
		NewGoodsReceiptRepository(tx),
		NewStockRepository(tx),
		NewInventoryMovementRepository(tx),
		NewCashMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
