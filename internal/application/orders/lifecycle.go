package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// Config políticas del ciclo de vida de pedidos.
type Config struct {
	// AllowOversell permite reservar por encima del disponible al crear o
	// editar. El consumo al confirmar sigue topado por la existencia física.
	AllowOversell bool
}

// LifecycleUseCase gobierna las transiciones de estado de un pedido y sus
// efectos sobre inventario y cartera:
//
//	PENDING → {CONFIRMED, CANCELLED}; CONFIRMED → DELIVERED.
//
// Crear reserva; confirmar consume, registra movimiento SALE, caja y saldo
// del cliente; cancelar/eliminar liberan la reserva. Cada operación es una
// sola transacción: falla todo o no falla nada.
type LifecycleUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	warehouseRepo repository.WarehouseRepository
	priceResolver PriceResolver
	cfg           Config
	now           func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	warehouseRepo repository.WarehouseRepository,
	priceResolver PriceResolver,
	cfg Config,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		warehouseRepo: warehouseRepo,
		priceResolver: priceResolver,
		cfg:           cfg,
		now:           time.Now,
	}
}

// deltaCollector acumula los deltas de inventario aplicados por la operación
// para devolverlos al caller junto con el agregado mutado.
type deltaCollector struct {
	deltas []dto.InventoryDeltaDTO
}

func (c *deltaCollector) add(productID, warehouseID string, ownership entity.OwnershipType, onHand, reserved decimal.Decimal) {
	c.deltas = append(c.deltas, dto.InventoryDeltaDTO{
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Ownership:     string(ownership),
		OnHandDelta:   onHand,
		ReservedDelta: reserved,
	})
}

// Create valida, arma las líneas (precio vía cascada cuando no viene dado),
// reserva el equivalente en piezas por línea y persiste el pedido en PENDING.
// Con sobreventa deshabilitada, una reserva que deje disponible negativo
// falla con ErrInsufficientStock y revierte todo.
func (uc *LifecycleUseCase) Create(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID == "" && in.WalkInName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ownership, err := parseOwnership(in.Ownership)
	if err != nil {
		return nil, err
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	items, total, err := uc.buildItems(ctx, in.CustomerID, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		CustomerID:    in.CustomerID,
		WalkInName:    in.WalkInName,
		WarehouseID:   in.WarehouseID,
		Ownership:     ownership,
		Status:        entity.OrderStatusPending,
		TotalAmount:   total,
		PaymentAmount: in.PaymentAmount,
		PaymentMethod: in.PaymentMethod,
		Date:          now,
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var col deltaCollector
	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.InventoryMovementRepository,
		_ repository.CustomerRepository,
		_ repository.CashMovementRepository,
	) error {
		for _, item := range items {
			if err := uc.reserve(stockRepo, &col, item.ProductID, order.WarehouseID, order.Ownership, item.Pieces, now); err != nil {
				return err
			}
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range items {
			items[i].ID = uuid.New().String()
			items[i].OrderID = order.ID
			if err := orderRepo.CreateItem(items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = cloneItems(items)
	return toOrderResponse(order, col.deltas), nil
}

// Edit reemplaza las líneas de un pedido PENDING aplicando por producto el
// delta de reserva (nuevo − viejo) en la misma transacción: nunca hay una
// ventana con la reserva vieja liberada y la nueva sin aplicar.
func (uc *LifecycleUseCase) Edit(ctx context.Context, actorID, orderID string, in dto.EditOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()

	var out *entity.Order
	var col deltaCollector
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.InventoryMovementRepository,
		_ repository.CustomerRepository,
		_ repository.CashMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrInvalidState
		}

		items, total, err := uc.buildItems(ctx, order.CustomerID, in.Items)
		if err != nil {
			return err
		}

		// Delta por producto: reserva nueva menos reserva vigente.
		deltas := map[string]decimal.Decimal{}
		for _, old := range order.Items {
			deltas[old.ProductID] = deltas[old.ProductID].Sub(old.Pieces)
		}
		for _, item := range items {
			deltas[item.ProductID] = deltas[item.ProductID].Add(item.Pieces)
		}
		for productID, delta := range deltas {
			if delta.IsZero() {
				continue
			}
			if err := uc.reserve(stockRepo, &col, productID, order.WarehouseID, order.Ownership, delta, now); err != nil {
				return err
			}
		}

		if err := orderRepo.DeleteItems(order.ID); err != nil {
			return err
		}
		for i := range items {
			items[i].ID = uuid.New().String()
			items[i].OrderID = order.ID
			if err := orderRepo.CreateItem(items[i]); err != nil {
				return err
			}
		}

		order.TotalAmount = total
		if in.PaymentAmount != nil {
			if in.PaymentAmount.IsNegative() {
				return domain.ErrInvalidInput
			}
			order.PaymentAmount = *in.PaymentAmount
		}
		if in.PaymentMethod != nil {
			order.PaymentMethod = *in.PaymentMethod
		}
		order.UpdatedAt = now
		if err := orderRepo.UpdateHeader(order); err != nil {
			return err
		}
		order.Items = cloneItems(items)
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out, col.deltas), nil
}

// Confirm consume inventario (tope: existencia física), libera la reserva,
// escribe el movimiento SALE por línea, registra el pago en caja si lo hay y
// actualiza el saldo del cliente en total − pago. Atomicidad total: aplicar
// parcialmente cualquiera de estos efectos es una violación de corrección.
func (uc *LifecycleUseCase) Confirm(ctx context.Context, actorID, orderID string) (*dto.OrderResponse, error) {
	now := uc.now()

	var out *entity.Order
	var col deltaCollector
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		customerRepo repository.CustomerRepository,
		cashRepo repository.CashMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusConfirmed) {
			return domain.ErrInvalidState
		}

		for _, item := range order.Items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, order.WarehouseID, order.Ownership)
			if err != nil {
				return err
			}
			// El consumo nunca deja la existencia física negativa, aun con
			// sobreventa permitida en la reserva.
			if stock.OnHand.LessThan(item.Pieces) {
				return domain.ErrInsufficientStock
			}
			stock.OnHand = stock.OnHand.Sub(item.Pieces)
			stock.Reserved = clampZero(stock.Reserved.Sub(item.Pieces))
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			col.add(item.ProductID, order.WarehouseID, order.Ownership, item.Pieces.Neg(), item.Pieces.Neg())

			mov := &entity.InventoryMovement{
				ID:            uuid.New().String(),
				TransactionID: order.ID,
				ProductID:     item.ProductID,
				WarehouseID:   order.WarehouseID,
				Ownership:     order.Ownership,
				Type:          entity.MovementTypeSALE,
				Quantity:      item.Pieces.Neg(),
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     actorID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		if order.PaymentAmount.IsPositive() {
			cash := &entity.CashMovement{
				ID:          uuid.New().String(),
				Type:        entity.CashTypeSalePayment,
				ReferenceID: order.ID,
				CustomerID:  order.CustomerID,
				Amount:      order.PaymentAmount,
				Method:      order.PaymentMethod,
				Date:        now,
				CreatedBy:   actorID,
				CreatedAt:   now,
			}
			if err := cashRepo.Create(cash); err != nil {
				return err
			}
		}

		// Venta de mostrador no afecta cartera.
		if order.CustomerID != "" {
			delta := order.TotalAmount.Sub(order.PaymentAmount)
			if _, err := customerRepo.GetForUpdate(order.CustomerID); err != nil {
				return err
			}
			if err := customerRepo.AddToBalance(order.CustomerID, delta); err != nil {
				return err
			}
		}

		order.Status = entity.OrderStatusConfirmed
		order.UpdatedAt = now
		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusConfirmed); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out, col.deltas), nil
}

// Cancel libera las reservas de un pedido PENDING y lo marca CANCELLED; la
// fila se conserva para auditoría.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, actorID, orderID string) (*dto.OrderResponse, error) {
	now := uc.now()

	var out *entity.Order
	var col deltaCollector
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.InventoryMovementRepository,
		_ repository.CustomerRepository,
		_ repository.CashMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
			return domain.ErrInvalidState
		}
		if err := uc.releaseAll(stockRepo, &col, order, now); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCancelled
		order.UpdatedAt = now
		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusCancelled); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out, col.deltas), nil
}

// Delete elimina un pedido PENDING liberando todas sus reservas. Pedidos
// confirmados o posteriores no se eliminan (exigiría un flujo de devolución).
func (uc *LifecycleUseCase) Delete(ctx context.Context, actorID, orderID string) ([]dto.InventoryDeltaDTO, error) {
	now := uc.now()

	var col deltaCollector
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.InventoryMovementRepository,
		_ repository.CustomerRepository,
		_ repository.CashMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrInvalidState
		}
		if err := uc.releaseAll(stockRepo, &col, order, now); err != nil {
			return err
		}
		if err := orderRepo.DeleteItems(order.ID); err != nil {
			return err
		}
		return orderRepo.Delete(order.ID)
	})
	if err != nil {
		return nil, err
	}
	return col.deltas, nil
}

// Deliver marca entregado un pedido CONFIRMED. Solo estado: el stock ya se
// consumió al confirmar.
func (uc *LifecycleUseCase) Deliver(ctx context.Context, actorID, orderID string) (*dto.OrderResponse, error) {
	now := uc.now()

	var out *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockRepository,
		_ repository.InventoryMovementRepository,
		_ repository.CustomerRepository,
		_ repository.CashMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusDelivered) {
			return domain.ErrInvalidState
		}
		order.Status = entity.OrderStatusDelivered
		order.UpdatedAt = now
		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusDelivered); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out, nil), nil
}

// buildItems arma las líneas persistibles y el total del pedido. El precio
// viene del request; si no, de la cascada (el nivel queda en PriceSource).
func (uc *LifecycleUseCase) buildItems(ctx context.Context, customerID string, lines []dto.OrderLineRequest) ([]*entity.OrderItem, decimal.Decimal, error) {
	items := make([]*entity.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.ProductID == "" || !line.Quantity.IsPositive() {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		unit, err := packagingUnit(line.Unit)
		if err != nil {
			return nil, decimal.Zero, err
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}

		price := decimal.Zero
		source := "MANUAL"
		if line.UnitPrice != nil && line.UnitPrice.IsPositive() {
			price = *line.UnitPrice
		} else if uc.priceResolver != nil {
			resolved, tier, err := uc.priceResolver.Resolve(ctx, customerID, line.ProductID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			price = resolved
			source = string(tier)
		}
		if price.IsNegative() {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}

		item, err := buildOrderItem(product, unit, line.Quantity, price, source)
		if err != nil {
			return nil, decimal.Zero, err
		}
		items = append(items, item)
		total = total.Add(item.LineTotal)
	}
	return items, total, nil
}

// reserve aplica un delta de reserva (firmado) sobre la fila de stock
// bloqueada. Con sobreventa deshabilitada rechaza deltas positivos que dejen
// el disponible negativo. La reserva nunca queda bajo cero.
func (uc *LifecycleUseCase) reserve(
	stockRepo repository.StockRepository,
	col *deltaCollector,
	productID, warehouseID string,
	ownership entity.OwnershipType,
	delta decimal.Decimal,
	now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(productID, warehouseID, ownership)
	if err != nil {
		return err
	}
	newReserved := stock.Reserved.Add(delta)
	if delta.IsPositive() && !uc.cfg.AllowOversell && stock.OnHand.Sub(newReserved).IsNegative() {
		return domain.ErrInsufficientStock
	}
	stock.Reserved = clampZero(newReserved)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	col.add(productID, warehouseID, ownership, decimal.Zero, delta)
	return nil
}

// releaseAll libera la reserva de cada línea del pedido.
func (uc *LifecycleUseCase) releaseAll(stockRepo repository.StockRepository, col *deltaCollector, order *entity.Order, now time.Time) error {
	for _, item := range order.Items {
		stock, err := stockRepo.GetForUpdate(item.ProductID, order.WarehouseID, order.Ownership)
		if err != nil {
			return err
		}
		stock.Reserved = clampZero(stock.Reserved.Sub(item.Pieces))
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		col.add(item.ProductID, order.WarehouseID, order.Ownership, decimal.Zero, item.Pieces.Neg())
	}
	return nil
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func cloneItems(items []*entity.OrderItem) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}

func toOrderResponse(order *entity.Order, deltas []dto.InventoryDeltaDTO) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		WalkInName:    order.WalkInName,
		WarehouseID:   order.WarehouseID,
		Ownership:     string(order.Ownership),
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount,
		PaymentAmount: order.PaymentAmount,
		PaymentMethod: order.PaymentMethod,
		Date:          order.Date,
		Deltas:        deltas,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Unit:        string(item.Unit),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			CartonCount: item.CartonCount,
			PalletCount: item.PalletCount,
			PriceSource: item.PriceSource,
		})
	}
	return resp
}
