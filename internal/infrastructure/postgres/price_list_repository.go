package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo listas de precios sobre PostgreSQL.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

// Create persiste una lista de precios.
func (r *PriceListRepo) Create(list *entity.PriceList) error {
	query := `INSERT INTO price_lists (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, list.ID, list.Name, list.CreatedAt, list.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert price list: %w", err)
	}
	return nil
}

// GetByID obtiene una lista por ID.
func (r *PriceListRepo) GetByID(id string) (*entity.PriceList, error) {
	query := `SELECT id, name, created_at, updated_at FROM price_lists WHERE id = $1`
	var l entity.PriceList
	err := r.q.QueryRow(context.Background(), query, id).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price list: %w", err)
	}
	return &l, nil
}

// List lista las listas de precios con paginación.
func (r *PriceListRepo) List(limit, offset int) ([]*entity.PriceList, error) {
	query := `SELECT id, name, created_at, updated_at FROM price_lists ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	defer rows.Close()

	var out []*entity.PriceList
	for rows.Next() {
		var l entity.PriceList
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price list: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// UpsertItem inserta o reemplaza el precio de un producto en la lista.
func (r *PriceListRepo) UpsertItem(item *entity.PriceListItem) error {
	query := `
		INSERT INTO price_list_items (price_list_id, product_id, price, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (price_list_id, product_id)
		DO UPDATE SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.PriceListID, item.ProductID, item.Price, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert price list item: %w", err)
	}
	return nil
}

// GetItem devuelve el precio del producto en la lista; nil (sin error) si el
// producto no está en la lista.
func (r *PriceListRepo) GetItem(priceListID, productID string) (*entity.PriceListItem, error) {
	query := `
		SELECT price_list_id, product_id, price, updated_at
		FROM price_list_items WHERE price_list_id = $1 AND product_id = $2`
	var it entity.PriceListItem
	err := r.q.QueryRow(context.Background(), query, priceListID, productID).Scan(
		&it.PriceListID, &it.ProductID, &it.Price, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price list item: %w", err)
	}
	return &it, nil
}
