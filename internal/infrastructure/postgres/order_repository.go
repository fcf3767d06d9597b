package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, customer_id, walk_in_name, warehouse_id, ownership, status, total_amount, payment_amount, payment_method, date, created_by, created_at, updated_at`

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.WalkInName, order.WarehouseID, order.Ownership,
		order.Status, order.TotalAmount, order.PaymentAmount, order.PaymentMethod,
		order.Date, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, unit, quantity, unit_price, line_total, pieces, carton_count, pallet_count, price_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Unit, item.Quantity,
		item.UnitPrice, item.LineTotal, item.Pieces,
		item.CartonCount, item.PalletCount, item.PriceSource,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *OrderRepo) get(id string, forUpdate bool) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.Order
	var customerID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &customerID, &o.WalkInName, &o.WarehouseID, &o.Ownership,
		&o.Status, &o.TotalAmount, &o.PaymentAmount, &o.PaymentMethod,
		&o.Date, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if customerID != nil {
		o.CustomerID = *customerID
	}

	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) listItems(orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, unit, quantity, unit_price, line_total, pieces, carton_count, pallet_count, price_source
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var out []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Unit, &it.Quantity,
			&it.UnitPrice, &it.LineTotal, &it.Pieces,
			&it.CartonCount, &it.PalletCount, &it.PriceSource,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) { return r.get(id, false) }

// GetForUpdate obtiene el pedido bloqueando la cabecera (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.get(id, true) }

// UpdateHeader reescribe la cabecera (totales, pago, fechas).
func (r *OrderRepo) UpdateHeader(order *entity.Order) error {
	query := `
		UPDATE orders
		SET total_amount = $2, payment_amount = $3, payment_method = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.TotalAmount, order.PaymentAmount, order.PaymentMethod, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order header: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus fija el estado del pedido.
func (r *OrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems elimina todas las líneas del pedido.
func (r *OrderRepo) DeleteItems(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera del pedido.
func (r *OrderRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pedidos con paginación, más recientes primero (sin líneas).
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		var customerID *string
		if err := rows.Scan(
			&o.ID, &customerID, &o.WalkInName, &o.WarehouseID, &o.Ownership,
			&o.Status, &o.TotalAmount, &o.PaymentAmount, &o.PaymentMethod,
			&o.Date, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if customerID != nil {
			o.CustomerID = *customerID
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// LastUnitPrice devuelve el precio unitario de la línea más reciente de este
// cliente y producto entre pedidos no cancelados (nivel HISTORY de la
// cascada). nil sin error cuando no hay historial.
func (r *OrderRepo) LastUnitPrice(customerID, productID string, before time.Time) (*decimal.Decimal, error) {
	query := `
		SELECT oi.unit_price
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.customer_id = $1 AND oi.product_id = $2
		  AND o.status <> 'CANCELLED' AND o.date <= $3
		ORDER BY o.date DESC
		LIMIT 1`
	var price decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, customerID, productID, before).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last unit price: %w", err)
	}
	return &price, nil
}
