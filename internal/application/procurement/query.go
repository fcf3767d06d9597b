package procurement

import (
	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// QueryUseCase son las lecturas de órdenes de compra y recepciones; no
// mutan estado y por tanto no corren dentro del TxRunner.
type QueryUseCase struct {
	poRepo      repository.PurchaseOrderRepository
	receiptRepo repository.GoodsReceiptRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(poRepo repository.PurchaseOrderRepository, receiptRepo repository.GoodsReceiptRepository) *QueryUseCase {
	return &QueryUseCase{poRepo: poRepo, receiptRepo: receiptRepo}
}

// List devuelve una página de órdenes de compra (sin líneas).
func (uc *QueryUseCase) List(page dto.PageRequest) ([]*dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	pos, err := uc.poRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, toPurchaseOrderResponse(po, nil))
	}
	return out, nil
}

// ListReceipts devuelve los eventos de recepción de una orden de compra,
// más reciente primero.
func (uc *QueryUseCase) ListReceipts(poID string) ([]*dto.GoodsReceiptResponse, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}

	receipts, err := uc.receiptRepo.ListByPurchaseOrder(poID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GoodsReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		resp := &dto.GoodsReceiptResponse{
			ID:              r.ID,
			PurchaseOrderID: r.PurchaseOrderID,
			Date:            r.Date,
			Items:           make([]dto.GoodsReceiptItemResponse, 0, len(r.Items)),
		}
		for _, it := range r.Items {
			resp.Items = append(resp.Items, dto.GoodsReceiptItemResponse{
				ID:          it.ID,
				POItemID:    it.POItemID,
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				Pieces:      it.Pieces,
				CartonCount: it.CartonCount,
				PalletCount: it.PalletCount,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}
