package packaging_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distribuidora-pro/internal/domain/packaging"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de empaques ambiguos
//
// Vector de referencia: formato "45/45" (0.2025 m² nominal por pieza) con
// piezas-por-caja crudo = 1.42 (en realidad área por caja). El candidato es
// round(1.42 / 0.2025) = 7 y |7 × 0.2025 − 1.42| = 0.0025 < 0.05, así que:
//
//	piezasPorCaja efectivo  = 7
//	áreaPorPieza efectiva   = 1.42 / 7 ≈ 0.202857
//
// y 1056 cajas deben reproducir exactamente 1499.52 m².
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestParseSize(t *testing.T) {
	assert.True(t, packaging.ParseSize("45/45").Equal(d("0.2025")))
	assert.True(t, packaging.ParseSize("60x60").Equal(d("0.36")))
	assert.True(t, packaging.ParseSize("30/60").Equal(d("0.18")))
	assert.True(t, packaging.ParseSize("").IsZero())
	assert.True(t, packaging.ParseSize("grande").IsZero())
	assert.True(t, packaging.ParseSize("45/").IsZero())
}

func TestNormalize_AreaPorCajaCorregida(t *testing.T) {
	p := packaging.Normalize("45/45", d("1.42"), d("48"))

	assert.True(t, p.PiecesPerCarton.Equal(d("7")),
		"1.42 no es entero y debe corregirse a 7 piezas por caja")
	assert.True(t, packaging.Round2(p.AreaPerPiece.Mul(d("7"))).Equal(d("1.42")),
		"el área efectiva debe reproducir el área por caja registrada")

	// 1056 cajas → 7392 piezas → 1499.52 m² exactos
	pieces, err := packaging.ToPieces(packaging.Quantity{Unit: packaging.UnitCarton, Value: d("1056")}, p)
	require.NoError(t, err)
	assert.True(t, pieces.Equal(d("7392")))
	lq := packaging.FromPieces(pieces, p)
	assert.True(t, packaging.Round2(lq.Area).Equal(d("1499.52")))
}

func TestNormalize_SinCorreccion(t *testing.T) {
	// Entero: queda tal cual, área nominal del formato.
	p := packaging.Normalize("45/45", d("7"), d("48"))
	assert.True(t, p.PiecesPerCarton.Equal(d("7")))
	assert.True(t, p.AreaPerPiece.Equal(d("0.2025")))

	// No entero pero fuera de tolerancia: se conserva el valor crudo.
	p = packaging.Normalize("45/45", d("3.5"), d("48"))
	assert.True(t, p.PiecesPerCarton.Equal(d("3.5")))
	assert.True(t, p.AreaPerPiece.Equal(d("0.2025")))
}

func TestNormalize_ItemUnicoExento(t *testing.T) {
	p := packaging.Normalize("45/45", d("1"), d("1"))
	assert.True(t, p.SingleItem())
	assert.True(t, p.PiecesPerCarton.Equal(d("1")))
	assert.True(t, p.AreaPerPiece.Equal(d("0.2025")))
}

func TestNormalize_SinFormato(t *testing.T) {
	// Sin área nominal no hay corrección posible.
	p := packaging.Normalize("", d("1.42"), d("48"))
	assert.True(t, p.PiecesPerCarton.Equal(d("1.42")))
	assert.False(t, p.AreaSold())
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversiones: determinismo e ida y vuelta
// ──────────────────────────────────────────────────────────────────────────────

func TestConversion_EscenarioCompleto(t *testing.T) {
	// áreaPorPieza 0.36, 4 piezas por caja, 36 cajas por estiba.
	p := packaging.Normalize("60/60", d("4"), d("36"))

	pieces, err := packaging.ToPieces(packaging.Quantity{Unit: packaging.UnitPallet, Value: d("5")}, p)
	require.NoError(t, err)
	lq := packaging.FromPieces(pieces, p)
	assert.True(t, lq.Cartons.Equal(d("180")), "5 estibas son 180 cajas")
	assert.True(t, lq.Pieces.Equal(d("720")), "180 cajas son 720 piezas")
	assert.True(t, packaging.Round2(lq.Area).Equal(d("259.2")), "720 piezas cubren 259.2 m²")

	// El operador cambia la cantidad a 300 m²: se resuelve hacia atrás.
	pieces, err = packaging.ToPieces(packaging.Quantity{Unit: packaging.UnitSQM, Value: d("300")}, p)
	require.NoError(t, err)
	lq = packaging.FromPieces(pieces, p)
	assert.True(t, packaging.Round2(lq.Pieces).Equal(d("833.33")))
	assert.True(t, packaging.Round2(lq.Cartons).Equal(d("208.33")))
	assert.True(t, packaging.Round2(lq.Pallets).Equal(d("5.79")))
}

func TestConversion_IdaYVuelta(t *testing.T) {
	epsilon := d("0.01")
	cases := []struct {
		name  string
		pack  packaging.Packaging
		value decimal.Decimal
		unit  packaging.Unit
	}{
		{"cajas enteras", packaging.Normalize("45/45", d("7"), d("48")), d("1056"), packaging.UnitCarton},
		{"estibas fraccionarias", packaging.Normalize("60/60", d("4"), d("36")), d("5.79"), packaging.UnitPallet},
		{"metros cuadrados", packaging.Normalize("45/45", d("1.42"), d("48")), d("300"), packaging.UnitSQM},
		{"piezas sueltas", packaging.Normalize("30/60", d("12"), d("40")), d("833"), packaging.UnitPiece},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pieces, err := packaging.ToPieces(packaging.Quantity{Unit: tc.unit, Value: tc.value}, tc.pack)
			require.NoError(t, err)
			back, err := packaging.InUnit(pieces, tc.unit, tc.pack)
			require.NoError(t, err)
			assert.True(t, back.Sub(tc.value).Abs().LessThanOrEqual(epsilon),
				"ida y vuelta debe recuperar el valor original: %s vs %s", tc.value, back)
		})
	}
}

func TestConversion_Determinista(t *testing.T) {
	p := packaging.Normalize("45/45", d("1.42"), d("48"))
	q := packaging.Quantity{Unit: packaging.UnitCarton, Value: d("33")}
	a, errA := packaging.ToPieces(q, p)
	b, errB := packaging.ToPieces(q, p)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.True(t, a.Equal(b), "la misma cantidad cruda siempre produce el mismo pivote en piezas")
}

func TestConversion_Errores(t *testing.T) {
	// Producto sin área: pedir m² es entrada inválida.
	p := packaging.Normalize("", d("10"), d("20"))
	_, err := packaging.ToPieces(packaging.Quantity{Unit: packaging.UnitSQM, Value: d("5")}, p)
	assert.Error(t, err)

	// Cantidad negativa.
	_, err = packaging.ToPieces(packaging.Quantity{Unit: packaging.UnitPiece, Value: d("-1")}, p)
	assert.Error(t, err)

	// Unidad desconocida.
	_, err = packaging.ParseUnit("TONELADA")
	assert.Error(t, err)
	u, err := packaging.ParseUnit(" pallet ")
	require.NoError(t, err)
	assert.Equal(t, packaging.UnitPallet, u)
}
