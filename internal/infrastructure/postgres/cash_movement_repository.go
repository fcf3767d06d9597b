package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo libro de caja sobre PostgreSQL (usable con pool o tx).
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

const cashColumns = `id, type, reference_id, customer_id, amount, method, date, created_by, created_at`

// Create persiste una entrada del libro de caja.
func (r *CashMovementRepo) Create(mov *entity.CashMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_movements (` + cashColumns + `)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.Type, mov.ReferenceID, mov.CustomerID,
		mov.Amount, mov.Method, mov.Date, mov.CreatedBy, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}

func (r *CashMovementRepo) list(query string, args ...any) ([]*entity.CashMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		var customerID *string
		if err := rows.Scan(
			&m.ID, &m.Type, &m.ReferenceID, &customerID,
			&m.Amount, &m.Method, &m.Date, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		if customerID != nil {
			m.CustomerID = *customerID
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByCustomer lista los movimientos de caja de un cliente, más recientes primero.
func (r *CashMovementRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CashMovement, error) {
	query := `SELECT ` + cashColumns + ` FROM cash_movements WHERE customer_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.list(query, customerID, limit, offset)
}

// ListByReference lista los movimientos ligados a un pedido u orden de compra.
func (r *CashMovementRepo) ListByReference(referenceID string) ([]*entity.CashMovement, error) {
	query := `SELECT ` + cashColumns + ` FROM cash_movements WHERE reference_id = $1 ORDER BY date`
	return r.list(query, referenceID)
}
