package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/application/pricing"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Hace visible la frontera de atomicidad del
// ciclo de vida del pedido y permite inyectar un store falso en tests.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		customerRepo repository.CustomerRepository,
		cashRepo repository.CashMovementRepository,
	) error) error
}

// PriceResolver es la cascada de precios vista desde la captura de pedidos.
type PriceResolver interface {
	Resolve(ctx context.Context, customerID, productID string) (decimal.Decimal, pricing.Tier, error)
}
