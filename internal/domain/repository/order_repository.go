package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Las mutaciones de estado y de líneas corren siempre dentro de la
// transacción del ciclo de vida (TxRunner).
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido para serializar transiciones.
	GetForUpdate(id string) (*entity.Order, error)
	UpdateHeader(order *entity.Order) error
	UpdateStatus(id string, status entity.OrderStatus) error
	DeleteItems(orderID string) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Order, error)
	// LastUnitPrice devuelve el precio unitario de la línea más reciente de
	// este cliente y producto entre pedidos no cancelados (nivel HISTORY de
	// la cascada). nil sin error cuando no hay historial.
	LastUnitPrice(customerID, productID string, before time.Time) (*decimal.Decimal, error)
}
