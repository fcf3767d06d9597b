package repository

import "github.com/tu-usuario/distribuidora-pro/internal/domain/entity"

// PriceListRepository define el puerto para listas de precios.
type PriceListRepository interface {
	Create(list *entity.PriceList) error
	GetByID(id string) (*entity.PriceList, error)
	List(limit, offset int) ([]*entity.PriceList, error)
	UpsertItem(item *entity.PriceListItem) error
	// GetItem devuelve nil (sin error) si el producto no está en la lista.
	GetItem(priceListID, productID string) (*entity.PriceListItem, error)
}
