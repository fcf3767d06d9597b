package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/packaging"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// LineBuilderUseCase es la sesión de captura de líneas: mantiene estibas,
// cajas, cantidad y unidad mutuamente consistentes vía el pivote en piezas.
// Es el mismo camino de código para ventas y compras; una divergencia entre
// ambos lados es un bug de corrección, no una diferencia de features.
type LineBuilderUseCase struct {
	productRepo   repository.ProductRepository
	priceResolver PriceResolver
}

// NewLineBuilderUseCase construye el caso de uso.
func NewLineBuilderUseCase(productRepo repository.ProductRepository, priceResolver PriceResolver) *LineBuilderUseCase {
	return &LineBuilderUseCase{productRepo: productRepo, priceResolver: priceResolver}
}

// BuildLine construye una línea nueva desde producto, cantidad cruda y
// unidad. Si viene CustomerID el precio inicial sale de la cascada.
func (uc *LineBuilderUseCase) BuildLine(ctx context.Context, in dto.BuildLineRequest) (*dto.LineItemDTO, error) {
	if in.ProductID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	unit, err := packaging.ParseUnit(in.Unit)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	pack := product.Packaging()
	if pack.SingleItem() {
		// Ítem único: siempre en piezas, sin conversión.
		unit = packaging.UnitPiece
	}
	pieces, err := packaging.ToPieces(packaging.Quantity{Unit: unit, Value: in.Quantity}, pack)
	if err != nil {
		return nil, err
	}

	item := &dto.LineItemDTO{ProductID: in.ProductID, Unit: string(unit)}
	if uc.priceResolver != nil {
		price, tier, err := uc.priceResolver.Resolve(ctx, in.CustomerID, in.ProductID)
		if err != nil {
			return nil, err
		}
		item.UnitPrice = price
		item.PriceSource = string(tier)
	}
	uc.project(item, pieces, pack)
	return item, nil
}

// UpdateLine recalcula la línea tras editar uno de sus campos. Editar la
// unidad re-expresa la cantidad equivalente en piezas en la nueva unidad; el
// precio nunca se toca por un cambio de unidad.
func (uc *LineBuilderUseCase) UpdateLine(ctx context.Context, in dto.UpdateLineRequest) (*dto.LineItemDTO, error) {
	item := in.Item
	product, err := uc.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	pack := product.Packaging()
	unit, err := packaging.ParseUnit(item.Unit)
	if err != nil {
		return nil, err
	}

	var pieces decimal.Decimal
	switch in.ChangedField {
	case dto.LineFieldQuantity:
		pieces, err = packaging.ToPieces(packaging.Quantity{Unit: unit, Value: in.Value}, pack)
		if err != nil {
			return nil, err
		}
	case dto.LineFieldCartons:
		pieces, err = packaging.ToPieces(packaging.Quantity{Unit: packaging.UnitCarton, Value: in.Value}, pack)
		if err != nil {
			return nil, err
		}
	case dto.LineFieldPallets:
		pieces, err = packaging.ToPieces(packaging.Quantity{Unit: packaging.UnitPallet, Value: in.Value}, pack)
		if err != nil {
			return nil, err
		}
	case dto.LineFieldUnit:
		newUnit, err := packaging.ParseUnit(in.Unit)
		if err != nil {
			return nil, err
		}
		if pack.SingleItem() {
			newUnit = packaging.UnitPiece
		}
		pieces = item.Pieces
		item.Unit = string(newUnit)
	default:
		return nil, domain.ErrInvalidInput
	}
	if pieces.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	uc.project(&item, pieces, pack)
	return &item, nil
}

// project fija las cuatro vistas consistentes y el total de línea. Vistas
// redondeadas a 2 decimales (borde de presentación); el pivote queda intacto.
func (uc *LineBuilderUseCase) project(item *dto.LineItemDTO, pieces decimal.Decimal, pack packaging.Packaging) {
	lq := packaging.FromPieces(pieces, pack)
	item.Pieces = pieces
	item.Area = packaging.Round2(lq.Area)
	if pack.SingleItem() {
		item.Cartons = decimal.Zero
		item.Pallets = decimal.Zero
	} else {
		item.Cartons = packaging.Round2(lq.Cartons)
		item.Pallets = packaging.Round2(lq.Pallets)
	}
	qty, err := packaging.InUnit(pieces, packaging.Unit(item.Unit), pack)
	if err != nil {
		qty = pieces
	}
	item.Quantity = packaging.Round2(qty)
	item.LineTotal = packaging.Round2(item.Quantity.Mul(item.UnitPrice))
}

// buildOrderItem materializa una línea de pedido persistible desde el
// request, con pivote, conteos desnormalizados y total de línea.
func buildOrderItem(product *entity.Product, unit packaging.Unit, qty, unitPrice decimal.Decimal, source string) (*entity.OrderItem, error) {
	pack := product.Packaging()
	if pack.SingleItem() {
		unit = packaging.UnitPiece
	}
	pieces, err := packaging.ToPieces(packaging.Quantity{Unit: unit, Value: qty}, pack)
	if err != nil {
		return nil, err
	}
	if !pieces.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	lq := packaging.FromPieces(pieces, pack)
	quantity := packaging.Round2(qty)
	return &entity.OrderItem{
		ProductID:   product.ID,
		Unit:        unit,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   packaging.Round2(quantity.Mul(unitPrice)),
		Pieces:      pieces,
		CartonCount: packaging.Round2(lq.Cartons),
		PalletCount: packaging.Round2(lq.Pallets),
		PriceSource: source,
	}, nil
}
