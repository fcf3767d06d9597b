package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// PaymentUseCase registra abonos sueltos de clientes: baja el saldo de
// cartera y deja el movimiento de caja, en una sola transacción.
type PaymentUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner TxRunner) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, now: time.Now}
}

// RegisterPayment aplica un abono al saldo del cliente.
func (uc *PaymentUseCase) RegisterPayment(ctx context.Context, actorID, customerID string, in dto.RegisterPaymentRequest) (*dto.PaymentResponse, error) {
	if customerID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()

	var resp *dto.PaymentResponse
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.OrderRepository,
		_ repository.StockRepository,
		_ repository.InventoryMovementRepository,
		customerRepo repository.CustomerRepository,
		cashRepo repository.CashMovementRepository,
	) error {
		customer, err := customerRepo.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if err := customerRepo.AddToBalance(customerID, in.Amount.Neg()); err != nil {
			return err
		}
		cash := &entity.CashMovement{
			ID:          uuid.New().String(),
			Type:        entity.CashTypeCustomerPayment,
			ReferenceID: customerID,
			CustomerID:  customerID,
			Amount:      in.Amount,
			Method:      in.Method,
			Date:        now,
			CreatedBy:   actorID,
			CreatedAt:   now,
		}
		if err := cashRepo.Create(cash); err != nil {
			return err
		}
		resp = &dto.PaymentResponse{
			MovementID: cash.ID,
			CustomerID: customerID,
			Amount:     in.Amount,
			NewBalance: customer.CurrentBalance.Sub(in.Amount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
