package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/application/orders"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
)

// Catálogo de la sesión de captura: el 60/60 del escenario de conversión y
// un producto de ítem único (1 pieza por caja, 1 caja por estiba).
func builderProducts() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "CER-6060", Name: "Piso 60x60", Size: "60/60",
			PiecesPerCarton: d("4"), CartonsPerPallet: d("36"), BasePrice: d("12.5")},
		"pu": {ID: "pu", Code: "SAN-001", Name: "Sanitario", Size: "",
			PiecesPerCarton: d("1"), CartonsPerPallet: d("1"), BasePrice: d("450")},
	}}
}

func newBuilder() *orders.LineBuilderUseCase {
	return orders.NewLineBuilderUseCase(builderProducts(), &fixedResolver{price: d("12.5")})
}

func TestBuildLine_VistasConsistentes(t *testing.T) {
	uc := newBuilder()
	ctx := context.Background()

	// 5 estibas de 60/60: 720 piezas, 180 cajas, 259.2 m².
	line, err := uc.BuildLine(ctx, dto.BuildLineRequest{
		ProductID: "p1", Quantity: d("5"), Unit: "PALLET", CustomerID: "c1",
	})
	require.NoError(t, err)
	assert.True(t, line.Pieces.Equal(d("720")))
	assert.True(t, line.Cartons.Equal(d("180")))
	assert.True(t, line.Area.Equal(d("259.2")))
	assert.True(t, line.Quantity.Equal(d("5")))
	assert.True(t, line.UnitPrice.Equal(d("12.5")))
	assert.True(t, line.LineTotal.Equal(d("62.5")), "5 PALLET × 12.5")
	assert.Equal(t, "BASE", line.PriceSource)
}

func TestBuildLine_AreaRedondeaVistaNoPivote(t *testing.T) {
	uc := newBuilder()
	ctx := context.Background()

	// 300 m² / 0.36 = 833.33... piezas: el pivote conserva la precisión, las
	// vistas se redondean a 2 decimales.
	line, err := uc.BuildLine(ctx, dto.BuildLineRequest{
		ProductID: "p1", Quantity: d("300"), Unit: "SQM",
	})
	require.NoError(t, err)
	assert.True(t, line.Quantity.Equal(d("300")))
	assert.True(t, line.Cartons.Equal(d("208.33")))
	assert.True(t, line.Pallets.Equal(d("5.79")))
	assert.True(t, line.Pieces.GreaterThan(d("833.33")), "pivote sin redondear")
	assert.True(t, line.Pieces.LessThan(d("833.34")))
}

func TestBuildLine_ItemUnicoForzaPiezas(t *testing.T) {
	uc := newBuilder()
	ctx := context.Background()

	line, err := uc.BuildLine(ctx, dto.BuildLineRequest{
		ProductID: "pu", Quantity: d("3"), Unit: "CARTON",
	})
	require.NoError(t, err)
	assert.Equal(t, "PCS", line.Unit, "ítem único siempre se captura en piezas")
	assert.True(t, line.Pieces.Equal(d("3")))
	assert.True(t, line.Cartons.IsZero())
	assert.True(t, line.Pallets.IsZero())
}

func TestUpdateLine_SimetriaDePropagacion(t *testing.T) {
	uc := newBuilder()
	ctx := context.Background()

	line, err := uc.BuildLine(ctx, dto.BuildLineRequest{
		ProductID: "p1", Quantity: d("2"), Unit: "PALLET",
	})
	require.NoError(t, err)

	// Editar cajas recalcula todo desde el nuevo pivote.
	updated, err := uc.UpdateLine(ctx, dto.UpdateLineRequest{
		Item: *line, ChangedField: dto.LineFieldCartons, Value: d("90"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Pieces.Equal(d("360")))
	assert.True(t, updated.Pallets.Equal(d("2.5")))
	assert.True(t, updated.Area.Equal(d("129.6")))

	// Editar estibas desde esa línea vuelve exactamente al estado original.
	back, err := uc.UpdateLine(ctx, dto.UpdateLineRequest{
		Item: *updated, ChangedField: dto.LineFieldPallets, Value: d("2"),
	})
	require.NoError(t, err)
	assert.True(t, back.Pieces.Equal(line.Pieces))
	assert.True(t, back.Cartons.Equal(line.Cartons))
	assert.True(t, back.Area.Equal(line.Area))
}

func TestUpdateLine_CambioDeUnidadNoTocaPrecio(t *testing.T) {
	uc := newBuilder()
	ctx := context.Background()

	line, err := uc.BuildLine(ctx, dto.BuildLineRequest{
		ProductID: "p1", Quantity: d("1"), Unit: "PALLET", CustomerID: "c1",
	})
	require.NoError(t, err)
	require.True(t, line.UnitPrice.Equal(d("12.5")))

	// Pasar a m² re-expresa la cantidad (144 piezas × 0.36 = 51.84 m²) sin
	// alterar el pivote ni el precio unitario.
	updated, err := uc.UpdateLine(ctx, dto.UpdateLineRequest{
		Item: *line, ChangedField: dto.LineFieldUnit, Unit: "SQM",
	})
	require.NoError(t, err)
	assert.Equal(t, "SQM", updated.Unit)
	assert.True(t, updated.Pieces.Equal(d("144")))
	assert.True(t, updated.Quantity.Equal(d("51.84")))
	assert.True(t, updated.UnitPrice.Equal(d("12.5")))
}

func TestBuildLine_Invalida(t *testing.T) {
	uc := newBuilder()
	ctx := context.Background()

	_, err := uc.BuildLine(ctx, dto.BuildLineRequest{ProductID: "p1", Quantity: d("0"), Unit: "PCS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.BuildLine(ctx, dto.BuildLineRequest{ProductID: "nope", Quantity: d("1"), Unit: "PCS"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.BuildLine(ctx, dto.BuildLineRequest{ProductID: "p1", Quantity: d("1"), Unit: "BULTO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
