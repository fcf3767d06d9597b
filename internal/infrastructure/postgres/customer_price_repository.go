package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

var _ repository.CustomerPriceRepository = (*CustomerPriceRepo)(nil)

// CustomerPriceRepo precios pactados por cliente/producto y reglas por
// marca/formato sobre PostgreSQL.
type CustomerPriceRepo struct {
	q Querier
}

// NewCustomerPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerPriceRepository(q Querier) *CustomerPriceRepo {
	return &CustomerPriceRepo{q: q}
}

// CreateProductPrice persiste un precio pactado con ventana opcional.
func (r *CustomerPriceRepo) CreateProductPrice(price *entity.CustomerProductPrice) error {
	query := `
		INSERT INTO customer_product_prices (id, customer_id, product_id, price, valid_from, valid_to, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.CustomerID, price.ProductID, price.Price,
		price.ValidFrom, price.ValidTo, price.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer product price: %w", err)
	}
	return nil
}

// ListProductPrices lista los precios pactados de un cliente y producto, más
// recientes primero (la cascada toma el primero vigente).
func (r *CustomerPriceRepo) ListProductPrices(customerID, productID string) ([]*entity.CustomerProductPrice, error) {
	query := `
		SELECT id, customer_id, product_id, price, valid_from, valid_to, created_at
		FROM customer_product_prices
		WHERE customer_id = $1 AND product_id = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("list customer product prices: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomerProductPrice
	for rows.Next() {
		var p entity.CustomerProductPrice
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.ProductID, &p.Price, &p.ValidFrom, &p.ValidTo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer product price: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// DeleteProductPrice retira un precio pactado.
func (r *CustomerPriceRepo) DeleteProductPrice(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM customer_product_prices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer product price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateBrandSizeRule persiste una regla marca/formato.
func (r *CustomerPriceRepo) CreateBrandSizeRule(rule *entity.CustomerBrandSizeRule) error {
	query := `
		INSERT INTO customer_brand_size_rules (id, customer_id, brand, size, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.CustomerID, rule.Brand, rule.Size, rule.Price, rule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert brand size rule: %w", err)
	}
	return nil
}

// FindBrandSizeRule busca la regla del cliente para una marca y formato.
// nil sin error cuando no hay regla.
func (r *CustomerPriceRepo) FindBrandSizeRule(customerID, brand, size string) (*entity.CustomerBrandSizeRule, error) {
	query := `
		SELECT id, customer_id, brand, size, price, created_at
		FROM customer_brand_size_rules
		WHERE customer_id = $1 AND brand = $2 AND size = $3
		ORDER BY created_at DESC LIMIT 1`
	var rule entity.CustomerBrandSizeRule
	err := r.q.QueryRow(context.Background(), query, customerID, brand, size).Scan(
		&rule.ID, &rule.CustomerID, &rule.Brand, &rule.Size, &rule.Price, &rule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find brand size rule: %w", err)
	}
	return &rule, nil
}

// DeleteBrandSizeRule retira una regla marca/formato.
func (r *CustomerPriceRepo) DeleteBrandSizeRule(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM customer_brand_size_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand size rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
