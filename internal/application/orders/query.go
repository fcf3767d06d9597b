package orders

import (
	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// QueryUseCase son las lecturas de pedidos y cartera que no mutan estado y
// por tanto no corren dentro del TxRunner.
type QueryUseCase struct {
	orderRepo repository.OrderRepository
	cashRepo  repository.CashMovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(orderRepo repository.OrderRepository, cashRepo repository.CashMovementRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo, cashRepo: cashRepo}
}

// Get devuelve un pedido con sus líneas.
func (uc *QueryUseCase) Get(orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order, nil), nil
}

// List devuelve una página de pedidos (sin líneas).
func (uc *QueryUseCase) List(page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, nil))
	}
	return out, nil
}

// CustomerLedger devuelve el libro de caja de un cliente (abonos y pagos
// de venta), más reciente primero.
func (uc *QueryUseCase) CustomerLedger(customerID string, page dto.PageRequest) ([]*dto.CashMovementResponse, error) {
	page.DefaultPage()
	movements, err := uc.cashRepo.ListByCustomer(customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CashMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, &dto.CashMovementResponse{
			ID:          m.ID,
			Type:        m.Type,
			ReferenceID: m.ReferenceID,
			CustomerID:  m.CustomerID,
			Amount:      m.Amount,
			Method:      m.Method,
			Date:        m.Date,
		})
	}
	return out, nil
}
