// Package packaging implementa el motor de conversión de empaques: piezas,
// metros cuadrados, cajas y estibas para una línea de producto. La unidad
// canónica es la pieza; las demás unidades son vistas derivadas.
//
// Regla de normalización: el campo piezas-por-caja del catálogo a veces trae
// en realidad el área por caja digitada por el operador (ej. 1.42 para un
// formato 45/45). Normalize detecta y corrige ese caso recalculando el área
// efectiva por pieza para que los totales por caja reproduzcan exactamente la
// cifra registrada (7 × 0.202857 = 1.42, no 7 × 0.2025 = 1.4175).
package packaging

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain"
)

// Unit es la unidad de venta de una línea (tag discriminante de Quantity).
type Unit string

const (
	UnitPiece  Unit = "PCS"
	UnitSQM    Unit = "SQM"
	UnitCarton Unit = "CARTON"
	UnitPallet Unit = "PALLET"
)

// ParseUnit valida y devuelve la unidad correspondiente al código.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToUpper(strings.TrimSpace(s))) {
	case UnitPiece:
		return UnitPiece, nil
	case UnitSQM:
		return UnitSQM, nil
	case UnitCarton:
		return UnitCarton, nil
	case UnitPallet:
		return UnitPallet, nil
	}
	return "", domain.ErrInvalidInput
}

// Quantity es una cantidad etiquetada con su unidad.
type Quantity struct {
	Unit  Unit
	Value decimal.Decimal
}

// Packaging contiene los ratios de empaque efectivos de un producto,
// ya normalizados. Construir siempre vía Normalize.
type Packaging struct {
	AreaPerPiece     decimal.Decimal // m² por pieza efectivo; cero si no se vende por área
	PiecesPerCarton  decimal.Decimal
	CartonsPerPallet decimal.Decimal
}

// SingleItem indica empaque 1 pieza / 1 caja (producto de ítem único,
// ej. láminas de muestra): siempre se vende en piezas, sin conversión.
func (p Packaging) SingleItem() bool {
	return p.PiecesPerCarton.Equal(decimal.NewFromInt(1))
}

// AreaSold indica si el producto se vende por área (m²).
func (p Packaging) AreaSold() bool {
	return p.AreaPerPiece.IsPositive()
}

// normalizeTolerance es el umbral de aceptación de la corrección área-por-caja.
// Heurística heredada de las convenciones de digitación del catálogo; no
// ajustar sin validar contra datos reales.
var normalizeTolerance = decimal.NewFromFloat(0.05)

var cm2PerM2 = decimal.NewFromInt(10000)

// ParseSize calcula el área nominal por pieza (m²) desde el descriptor de
// formato del producto: "45/45" o "45x45" son centímetros de ancho/alto
// (45/45 → 0.2025 m²). Devuelve cero si el descriptor no es interpretable.
func ParseSize(size string) decimal.Decimal {
	s := strings.TrimSpace(size)
	if s == "" {
		return decimal.Zero
	}
	var parts []string
	for _, sep := range []string{"/", "x", "X", "*"} {
		if strings.Contains(s, sep) {
			parts = strings.SplitN(s, sep, 2)
			break
		}
	}
	if len(parts) != 2 {
		return decimal.Zero
	}
	w, errW := decimal.NewFromString(strings.TrimSpace(parts[0]))
	h, errH := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || !w.IsPositive() || !h.IsPositive() {
		return decimal.Zero
	}
	return w.Mul(h).Div(cm2PerM2)
}

// Normalize construye los ratios efectivos de empaque de un producto.
//
//  1. El área nominal por pieza sale del descriptor de formato.
//  2. Si piezas-por-caja no es entero y hay área nominal, se prueba la
//     corrección: candidato = round(crudo / áreaNominal). Se acepta si
//     |candidato × áreaNominal − crudo| < 0.05, y en ese caso el área
//     efectiva por pieza se recalcula como crudo / candidato.
//  3. Si no aplica corrección, los valores crudos/nominales quedan como efectivos.
//  4. Empaque 1/1 (ítem único) queda exento de toda corrección.
func Normalize(sizeDesc string, rawPiecesPerCarton, cartonsPerPallet decimal.Decimal) Packaging {
	nominal := ParseSize(sizeDesc)
	p := Packaging{
		AreaPerPiece:     nominal,
		PiecesPerCarton:  rawPiecesPerCarton,
		CartonsPerPallet: cartonsPerPallet,
	}
	if p.SingleItem() {
		return p
	}
	if !rawPiecesPerCarton.IsInteger() && nominal.IsPositive() {
		candidate := rawPiecesPerCarton.Div(nominal).Round(0)
		if candidate.IsPositive() &&
			candidate.Mul(nominal).Sub(rawPiecesPerCarton).Abs().LessThan(normalizeTolerance) {
			p.PiecesPerCarton = candidate
			p.AreaPerPiece = rawPiecesPerCarton.Div(candidate)
		}
	}
	return p
}

// LineQuantities son las cuatro vistas consistentes de una misma cantidad.
// Valores a precisión completa; redondear con Round2 solo al presentar.
type LineQuantities struct {
	Pieces  decimal.Decimal
	Area    decimal.Decimal
	Cartons decimal.Decimal
	Pallets decimal.Decimal
}

// ToPieces convierte una cantidad etiquetada a piezas (pivote canónico).
func ToPieces(q Quantity, p Packaging) (decimal.Decimal, error) {
	if q.Value.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	switch q.Unit {
	case UnitPiece:
		return q.Value, nil
	case UnitSQM:
		if !p.AreaSold() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return q.Value.Div(p.AreaPerPiece), nil
	case UnitCarton:
		if !p.PiecesPerCarton.IsPositive() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return q.Value.Mul(p.PiecesPerCarton), nil
	case UnitPallet:
		if !p.PiecesPerCarton.IsPositive() || !p.CartonsPerPallet.IsPositive() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return q.Value.Mul(p.CartonsPerPallet).Mul(p.PiecesPerCarton), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// FromPieces deriva las cuatro vistas desde el pivote en piezas.
func FromPieces(pieces decimal.Decimal, p Packaging) LineQuantities {
	lq := LineQuantities{Pieces: pieces}
	if p.AreaSold() {
		lq.Area = pieces.Mul(p.AreaPerPiece)
	}
	if p.PiecesPerCarton.IsPositive() {
		lq.Cartons = pieces.Div(p.PiecesPerCarton)
		if p.CartonsPerPallet.IsPositive() {
			lq.Pallets = lq.Cartons.Div(p.CartonsPerPallet)
		}
	}
	return lq
}

// InUnit re-expresa una cantidad de piezas en la unidad pedida.
func InUnit(pieces decimal.Decimal, unit Unit, p Packaging) (decimal.Decimal, error) {
	lq := FromPieces(pieces, p)
	switch unit {
	case UnitPiece:
		return lq.Pieces, nil
	case UnitSQM:
		if !p.AreaSold() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return lq.Area, nil
	case UnitCarton:
		if !p.PiecesPerCarton.IsPositive() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return lq.Cartons, nil
	case UnitPallet:
		if !p.PiecesPerCarton.IsPositive() || !p.CartonsPerPallet.IsPositive() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return lq.Pallets, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// Round2 redondea a 2 decimales; solo para bordes de presentación.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
