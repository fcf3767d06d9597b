package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/packaging"
)

// Product representa una referencia del catálogo (cerámica, porcelanato, etc.).
// Los ratios de empaque son inmutables salvo edición explícita del catálogo.
// PiecesPerCarton es el valor crudo del catálogo y puede ser ambiguo (área por
// caja digitada por el operador); usar Packaging() para obtener los efectivos.
type Product struct {
	ID               string
	Code             string // código único de referencia
	Name             string
	Brand            string
	Size             string          // descriptor de formato, ej. "45/45" (cm)
	PiecesPerCarton  decimal.Decimal // crudo, posiblemente ambiguo
	CartonsPerPallet decimal.Decimal
	BasePrice        decimal.Decimal // precio de venta base
	PurchasePrice    decimal.Decimal // precio de compra de referencia
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Packaging devuelve los ratios efectivos del producto, normalizados.
// Todo punto que incorpore el producto a un conjunto de trabajo (venta o
// compra) debe pasar por aquí para que la corrección sea idéntica en ambos lados.
func (p *Product) Packaging() packaging.Packaging {
	return packaging.Normalize(p.Size, p.PiecesPerCarton, p.CartonsPerPallet)
}
