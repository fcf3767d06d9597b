package orders

import (
	"context"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// DocumentGenerator renderiza el comprobante imprimible de un pedido.
// customer es nil en ventas de mostrador; el nombre viene en el pedido.
type DocumentGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, customer *entity.Customer, lines []dto.PrintLine) ([]byte, error)
}

// DocumentUseCase arma las líneas imprimibles de un pedido y delega el
// renderizado al colaborador de impresión.
type DocumentUseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	generator    DocumentGenerator
}

// NewDocumentUseCase construye el caso de uso de documentos.
func NewDocumentUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	generator DocumentGenerator,
) *DocumentUseCase {
	return &DocumentUseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// PrintLines devuelve las líneas del pedido en la forma exacta que consume
// la capa de impresión. BoxCount es el conteo de cajas de la línea.
func (uc *DocumentUseCase) PrintLines(orderID string) ([]dto.PrintLine, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.buildLines(order)
}

// GeneratePDF genera el PDF del pedido y devuelve sus bytes.
func (uc *DocumentUseCase) GeneratePDF(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	var customer *entity.Customer
	if order.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(order.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	lines, err := uc.buildLines(order)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateOrderPDF(ctx, order, customer, lines)
}

func (uc *DocumentUseCase) buildLines(order *entity.Order) ([]dto.PrintLine, error) {
	lines := make([]dto.PrintLine, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, dto.PrintLine{
			ProductCode: product.Code,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitCode:    string(item.Unit),
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			PalletCount: item.PalletCount,
			BoxCount:    item.CartonCount,
		})
	}
	return lines, nil
}
