package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
// La referencia al proveedor se persiste desarmada (supplier_kind, supplier_id)
// y se rearma como SupplierRef al leer.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, supplier_kind, supplier_id, warehouse_id, ownership, status, total_amount, delivery_cost, payment_amount, date, created_by, created_at, updated_at`

// Create persiste la cabecera de la orden de compra.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.Supplier.Kind, po.Supplier.ID, po.WarehouseID, po.Ownership,
		po.Status, po.TotalAmount, po.DeliveryCost, po.PaymentAmount,
		po.Date, po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(item *entity.POItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id, unit, quantity, unit_price, received_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseOrderID, item.ProductID, item.Unit,
		item.Quantity, item.UnitPrice, item.ReceivedQuantity,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.Supplier.Kind, &po.Supplier.ID, &po.WarehouseID, &po.Ownership,
		&po.Status, &po.TotalAmount, &po.DeliveryCost, &po.PaymentAmount,
		&po.Date, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	itemsQuery := `
		SELECT id, purchase_order_id, product_id, unit, quantity, unit_price, received_quantity
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.POItem
		if err := rows.Scan(
			&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.Unit,
			&it.Quantity, &it.UnitPrice, &it.ReceivedQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &po, nil
}

// GetByID obtiene una orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) { return r.get(id, false) }

// GetForUpdate obtiene la orden bloqueando la cabecera (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

// UpdateStatus fija el estado derivado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id string, status entity.POStatus) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemReceived fija el acumulado recibido de la línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, received decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`, itemID, received)
	if err != nil {
		return fmt.Errorf("update purchase order item received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddToPayment acumula un pago registrado contra la orden.
func (r *PurchaseOrderRepo) AddToPayment(id string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET payment_amount = payment_amount + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("add to purchase order payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes con paginación, más recientes primero (sin líneas).
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(
			&po.ID, &po.Supplier.Kind, &po.Supplier.ID, &po.WarehouseID, &po.Ownership,
			&po.Status, &po.TotalAmount, &po.DeliveryCost, &po.PaymentAmount,
			&po.Date, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &po)
	}
	return out, rows.Err()
}

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo eventos de recepción sobre PostgreSQL.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create persiste la cabecera de la recepción.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, purchase_order_id, date, created_by)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.PurchaseOrderID, receipt.Date, receipt.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de recepción con sus conteos derivados.
func (r *GoodsReceiptRepo) CreateItem(item *entity.GoodsReceiptItem) error {
	query := `
		INSERT INTO goods_receipt_items (id, receipt_id, po_item_id, product_id, quantity, pieces, carton_count, pallet_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ReceiptID, item.POItemID, item.ProductID,
		item.Quantity, item.Pieces, item.CartonCount, item.PalletCount,
	)
	if err != nil {
		return fmt.Errorf("insert goods receipt item: %w", err)
	}
	return nil
}

// ListByPurchaseOrder lista las recepciones de una orden con sus líneas.
func (r *GoodsReceiptRepo) ListByPurchaseOrder(poID string) ([]*entity.GoodsReceipt, error) {
	query := `
		SELECT id, purchase_order_id, date, created_by
		FROM goods_receipts WHERE purchase_order_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()

	var out []*entity.GoodsReceipt
	for rows.Next() {
		var g entity.GoodsReceipt
		if err := rows.Scan(&g.ID, &g.PurchaseOrderID, &g.Date, &g.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		out = append(out, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, g := range out {
		itemRows, err := r.q.Query(context.Background(), `
			SELECT id, receipt_id, po_item_id, product_id, quantity, pieces, carton_count, pallet_count
			FROM goods_receipt_items WHERE receipt_id = $1 ORDER BY id`, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list goods receipt items: %w", err)
		}
		for itemRows.Next() {
			var it entity.GoodsReceiptItem
			if err := itemRows.Scan(
				&it.ID, &it.ReceiptID, &it.POItemID, &it.ProductID,
				&it.Quantity, &it.Pieces, &it.CartonCount, &it.PalletCount,
			); err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("scan goods receipt item: %w", err)
			}
			g.Items = append(g.Items, it)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, err
		}
		itemRows.Close()
	}
	return out, nil
}
