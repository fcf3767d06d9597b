package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/packaging"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// UseCase gobierna el ciclo de compras: crear la orden, recibir mercancía
// (parcial o directa) y derivar el estado desde los ítems. La recepción es el
// espejo entrante de la confirmación de pedidos: misma normalización de
// empaques, mismo registro de movimientos, misma frontera transaccional.
type UseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	now           func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		now:           time.Now,
	}
}

// CreatePurchaseOrder valida la referencia etiquetada al proveedor (el Kind
// del request debe coincidir con el del proveedor), arma las líneas y persiste
// la orden en PENDING. Un pago al crear queda en caja (PURCHASE_PAYMENT) y
// acumulado en la orden para conciliación. No toca inventario.
func (uc *UseCase) CreatePurchaseOrder(ctx context.Context, actorID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 || in.SupplierID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentAmount.IsNegative() || in.DeliveryCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	kind, err := parseSupplierKind(in.SupplierKind)
	if err != nil {
		return nil, err
	}
	ownership, err := parseOwnership(in.Ownership)
	if err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.Kind != kind {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	items := make([]entity.POItem, 0, len(in.Items))
	total := in.DeliveryCost
	for _, line := range in.Items {
		if line.ProductID == "" || !line.Quantity.IsPositive() || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unit, err := packaging.ParseUnit(line.Unit)
		if err != nil {
			return nil, err
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.Packaging().SingleItem() {
			unit = packaging.UnitPiece
		}
		lineTotal := packaging.Round2(line.Quantity.Mul(line.UnitPrice))
		items = append(items, entity.POItem{
			ID:        uuid.New().String(),
			ProductID: line.ProductID,
			Unit:      unit,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		total = total.Add(lineTotal)
	}

	now := uc.now()
	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		Supplier:      entity.SupplierRef{Kind: kind, ID: in.SupplierID},
		WarehouseID:   in.WarehouseID,
		Ownership:     ownership,
		Status:        entity.POStatusPending,
		TotalAmount:   total,
		DeliveryCost:  in.DeliveryCost,
		PaymentAmount: in.PaymentAmount,
		Date:          now,
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunProcurement(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
		_ repository.StockRepository,
		_ repository.InventoryMovementRepository,
		cashRepo repository.CashMovementRepository,
	) error {
		if err := poRepo.Create(po); err != nil {
			return err
		}
		for i := range items {
			items[i].PurchaseOrderID = po.ID
			if err := poRepo.CreateItem(&items[i]); err != nil {
				return err
			}
		}
		if in.PaymentAmount.IsPositive() {
			return cashRepo.Create(&entity.CashMovement{
				ID:          uuid.New().String(),
				Type:        entity.CashTypePurchasePayment,
				ReferenceID: po.ID,
				Amount:      in.PaymentAmount,
				Date:        now,
				CreatedBy:   actorID,
				CreatedAt:   now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	po.Items = items
	return toPurchaseOrderResponse(po, nil), nil
}

// ReceiveGoods aplica una recepción manual (parcial) contra la orden. Por
// línea seleccionada: rechaza con ErrOverReceipt si la cantidad excede lo
// pendiente (nunca recorta en silencio), acumula el recibido, suma la
// existencia física en piezas con la misma normalización de empaques del lado
// de ventas, registra el movimiento PURCHASE y deriva el estado de la orden.
// Todo o nada.
func (uc *UseCase) ReceiveGoods(ctx context.Context, actorID, poID string, in dto.ReceiveGoodsRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	deltas := make(map[string]decimal.Decimal, len(in.Items))
	for _, line := range in.Items {
		if line.POItemID == "" || !line.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		deltas[line.POItemID] = deltas[line.POItemID].Add(line.Quantity)
	}
	return uc.receive(ctx, actorID, poID, in.PaymentAmount, func(po *entity.PurchaseOrder) (map[string]decimal.Decimal, error) {
		for itemID := range deltas {
			if findItem(po, itemID) == nil {
				return nil, domain.ErrNotFound
			}
		}
		return deltas, nil
	})
}

// DirectReceive recibe de un clic todo lo pendiente: mismo algoritmo que la
// recepción manual con cantidad = restante por línea. Una orden ya RECEIVED
// es un no-op, no un error.
func (uc *UseCase) DirectReceive(ctx context.Context, actorID, poID string) (*dto.PurchaseOrderResponse, error) {
	return uc.receive(ctx, actorID, poID, decimal.Zero, func(po *entity.PurchaseOrder) (map[string]decimal.Decimal, error) {
		deltas := map[string]decimal.Decimal{}
		for i := range po.Items {
			remaining := po.Items[i].Remaining()
			if remaining.IsPositive() {
				deltas[po.Items[i].ID] = remaining
			}
		}
		// Sin pendientes: la orden ya está completa.
		return deltas, nil
	})
}

// receive es el camino común de recepción. pick decide, ya con la orden
// bloqueada, cuánto se recibe por línea.
func (uc *UseCase) receive(
	ctx context.Context,
	actorID, poID string,
	payment decimal.Decimal,
	pick func(po *entity.PurchaseOrder) (map[string]decimal.Decimal, error),
) (*dto.PurchaseOrderResponse, error) {
	now := uc.now()

	var out *entity.PurchaseOrder
	var outDeltas []dto.InventoryDeltaDTO
	err := uc.txRunner.RunProcurement(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		cashRepo repository.CashMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status == entity.POStatusCancelled {
			return domain.ErrInvalidState
		}

		deltas, err := pick(po)
		if err != nil {
			return err
		}
		if len(deltas) == 0 {
			// No-op: nada pendiente por recibir.
			out = po
			return nil
		}

		receipt := &entity.GoodsReceipt{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			Date:            now,
			CreatedBy:       actorID,
		}
		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}

		for itemID, qty := range deltas {
			item := findItem(po, itemID)
			if item == nil {
				return domain.ErrNotFound
			}
			if qty.GreaterThan(item.Remaining()) {
				return domain.ErrOverReceipt
			}

			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			pack := product.Packaging()
			pieces, err := packaging.ToPieces(packaging.Quantity{Unit: item.Unit, Value: qty}, pack)
			if err != nil {
				return err
			}
			lq := packaging.FromPieces(pieces, pack)

			item.ReceivedQuantity = item.ReceivedQuantity.Add(qty)
			if err := poRepo.UpdateItemReceived(item.ID, item.ReceivedQuantity); err != nil {
				return err
			}

			stock, err := stockRepo.GetForUpdate(item.ProductID, po.WarehouseID, po.Ownership)
			if err != nil {
				return err
			}
			stock.OnHand = stock.OnHand.Add(pieces)
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			outDeltas = append(outDeltas, dto.InventoryDeltaDTO{
				ProductID:   item.ProductID,
				WarehouseID: po.WarehouseID,
				Ownership:   string(po.Ownership),
				OnHandDelta: pieces,
			})

			if err := movRepo.Create(&entity.InventoryMovement{
				ID:            uuid.New().String(),
				TransactionID: receipt.ID,
				ProductID:     item.ProductID,
				WarehouseID:   po.WarehouseID,
				Ownership:     po.Ownership,
				Type:          entity.MovementTypePURCHASE,
				Quantity:      pieces,
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     actorID,
			}); err != nil {
				return err
			}

			if err := receiptRepo.CreateItem(&entity.GoodsReceiptItem{
				ID:          uuid.New().String(),
				ReceiptID:   receipt.ID,
				POItemID:    item.ID,
				ProductID:   item.ProductID,
				Quantity:    qty,
				Pieces:      pieces,
				CartonCount: packaging.Round2(lq.Cartons),
				PalletCount: packaging.Round2(lq.Pallets),
			}); err != nil {
				return err
			}
		}

		if payment.IsPositive() {
			if err := cashRepo.Create(&entity.CashMovement{
				ID:          uuid.New().String(),
				Type:        entity.CashTypePurchasePayment,
				ReferenceID: po.ID,
				Amount:      payment,
				Date:        now,
				CreatedBy:   actorID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
			if err := poRepo.AddToPayment(po.ID, payment); err != nil {
				return err
			}
			po.PaymentAmount = po.PaymentAmount.Add(payment)
		}

		status := entity.DeriveStatus(po.Items)
		if status != po.Status {
			if err := poRepo.UpdateStatus(po.ID, status); err != nil {
				return err
			}
			po.Status = status
		}
		po.UpdatedAt = now
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(out, outDeltas), nil
}

// CancelPurchaseOrder marca CANCELLED una orden sin recepciones. Una orden
// con mercancía ya recibida no se cancela (exigiría revertir inventario).
func (uc *UseCase) CancelPurchaseOrder(ctx context.Context, actorID, poID string) (*dto.PurchaseOrderResponse, error) {
	now := uc.now()

	var out *entity.PurchaseOrder
	err := uc.txRunner.RunProcurement(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
		_ repository.StockRepository,
		_ repository.InventoryMovementRepository,
		_ repository.CashMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusPending {
			return domain.ErrInvalidState
		}
		for i := range po.Items {
			if po.Items[i].ReceivedQuantity.IsPositive() {
				return domain.ErrInvalidState
			}
		}
		if err := poRepo.UpdateStatus(po.ID, entity.POStatusCancelled); err != nil {
			return err
		}
		po.Status = entity.POStatusCancelled
		po.UpdatedAt = now
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(out, nil), nil
}

// GetPurchaseOrder consulta una orden con sus líneas.
func (uc *UseCase) GetPurchaseOrder(ctx context.Context, poID string) (*dto.PurchaseOrderResponse, error) {
	var out *entity.PurchaseOrder
	err := uc.txRunner.RunProcurement(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
		_ repository.StockRepository,
		_ repository.InventoryMovementRepository,
		_ repository.CashMovementRepository,
	) error {
		po, err := poRepo.GetByID(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(out, nil), nil
}

func findItem(po *entity.PurchaseOrder, itemID string) *entity.POItem {
	for i := range po.Items {
		if po.Items[i].ID == itemID {
			return &po.Items[i]
		}
	}
	return nil
}

func parseSupplierKind(s string) (entity.SupplierKind, error) {
	switch entity.SupplierKind(s) {
	case entity.SupplierBrand:
		return entity.SupplierBrand, nil
	case entity.SupplierFactory:
		return entity.SupplierFactory, nil
	}
	return "", domain.ErrInvalidInput
}

// parseOwnership interpreta el tipo de tenencia; vacío equivale a OWNED.
func parseOwnership(s string) (entity.OwnershipType, error) {
	switch entity.OwnershipType(s) {
	case "", entity.OwnershipOwned:
		return entity.OwnershipOwned, nil
	case entity.OwnershipConsignment:
		return entity.OwnershipConsignment, nil
	}
	return "", domain.ErrInvalidInput
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder, deltas []dto.InventoryDeltaDTO) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:            po.ID,
		SupplierKind:  string(po.Supplier.Kind),
		SupplierID:    po.Supplier.ID,
		WarehouseID:   po.WarehouseID,
		Ownership:     string(po.Ownership),
		Status:        string(po.Status),
		TotalAmount:   po.TotalAmount,
		DeliveryCost:  po.DeliveryCost,
		PaymentAmount: po.PaymentAmount,
		Date:          po.Date,
		Deltas:        deltas,
	}
	for i := range po.Items {
		item := &po.Items[i]
		resp.Items = append(resp.Items, dto.POItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			Unit:             string(item.Unit),
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			ReceivedQuantity: item.ReceivedQuantity,
			Remaining:        item.Remaining(),
		})
	}
	return resp
}
