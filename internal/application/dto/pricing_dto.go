package dto

import "github.com/shopspring/decimal"

// ResolvePriceResponse salida de la cascada de precios: el precio recomendado
// y el nivel que lo fijó. El nivel nunca se omite (auditoría en pantalla).
type ResolvePriceResponse struct {
	CustomerID string          `json:"customer_id"`
	ProductID  string          `json:"product_id"`
	Price      decimal.Decimal `json:"price"`
	SourceTier string          `json:"source_tier"` // HISTORY | CUSTOM | RULE | LIST | BASE
}

// SetPriceListItemRequest entrada para fijar el precio de un producto en una lista.
type SetPriceListItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}
