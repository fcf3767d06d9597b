package procurement

import (
	"context"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios de compras atados a esa tx. Crear la orden, recibir mercancía
// y derivar el estado son efectos de una sola transacción.
type TxRunner interface {
	RunProcurement(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		cashRepo repository.CashMovementRepository,
	) error) error
}
