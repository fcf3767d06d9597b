package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear una referencia del catálogo.
// PiecesPerCarton acepta el valor crudo del catálogo (puede traer área por
// caja; el motor de empaques normaliza al usarlo).
type CreateProductRequest struct {
	Code             string          `json:"code" validate:"required,min=1,max=100"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Brand            string          `json:"brand"`
	Size             string          `json:"size"` // descriptor de formato, ej. "45/45"
	PiecesPerCarton  decimal.Decimal `json:"pieces_per_carton"`
	CartonsPerPallet decimal.Decimal `json:"cartons_per_pallet"`
	BasePrice        decimal.Decimal `json:"base_price"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
}

// UpdateProductRequest entrada para actualizar una referencia (parcial).
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Brand            *string          `json:"brand"`
	Size             *string          `json:"size"`
	PiecesPerCarton  *decimal.Decimal `json:"pieces_per_carton"`
	CartonsPerPallet *decimal.Decimal `json:"cartons_per_pallet"`
	BasePrice        *decimal.Decimal `json:"base_price"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price"`
}

// ProductResponse salida de una referencia, incluyendo los ratios efectivos
// que produjo la normalización de empaque.
type ProductResponse struct {
	ID                    string          `json:"id"`
	Code                  string          `json:"code"`
	Name                  string          `json:"name"`
	Brand                 string          `json:"brand"`
	Size                  string          `json:"size"`
	PiecesPerCarton       decimal.Decimal `json:"pieces_per_carton"`
	CartonsPerPallet      decimal.Decimal `json:"cartons_per_pallet"`
	EffPiecesPerCarton    decimal.Decimal `json:"effective_pieces_per_carton"`
	EffAreaPerPiece       decimal.Decimal `json:"effective_area_per_piece"`
	BasePrice             decimal.Decimal `json:"base_price"`
	PurchasePrice         decimal.Decimal `json:"purchase_price"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
