package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	CreateItem(item *entity.POItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera de la orden para serializar recepciones.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id string, status entity.POStatus) error
	// UpdateItemReceived fija el acumulado recibido de una línea.
	UpdateItemReceived(itemID string, received decimal.Decimal) error
	AddToPayment(id string, delta decimal.Decimal) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}

// GoodsReceiptRepository define el puerto para eventos de recepción.
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	CreateItem(item *entity.GoodsReceiptItem) error
	ListByPurchaseOrder(poID string) ([]*entity.GoodsReceipt, error)
}
