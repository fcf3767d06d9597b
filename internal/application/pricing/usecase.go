package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// Tier identifica el nivel de la cascada que resolvió el precio. Se devuelve
// siempre junto al precio para auditoría y transparencia en pantalla; los
// callers no deben descartarlo.
type Tier string

const (
	TierHistory Tier = "HISTORY" // última línea vendida a este cliente
	TierCustom  Tier = "CUSTOM"  // precio pactado cliente/producto vigente
	TierRule    Tier = "RULE"    // regla por marca y formato del cliente
	TierList    Tier = "LIST"    // lista de precios asignada al cliente
	TierBase    Tier = "BASE"    // precio base del producto (o cero)
)

// ResolvePriceUseCase resuelve el precio unitario recomendado para un par
// cliente/producto evaluando la cascada en orden estricto: HISTORY, CUSTOM,
// RULE, LIST, BASE. El primer nivel que aplica gana.
type ResolvePriceUseCase struct {
	orderRepo     repository.OrderRepository
	customerRepo  repository.CustomerRepository
	priceRepo     repository.CustomerPriceRepository
	priceListRepo repository.PriceListRepository
	productRepo   repository.ProductRepository
	now           func() time.Time
}

// NewResolvePriceUseCase construye el caso de uso.
func NewResolvePriceUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	priceRepo repository.CustomerPriceRepository,
	priceListRepo repository.PriceListRepository,
	productRepo repository.ProductRepository,
) *ResolvePriceUseCase {
	return &ResolvePriceUseCase{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		priceRepo:     priceRepo,
		priceListRepo: priceListRepo,
		productRepo:   productRepo,
		now:           time.Now,
	}
}

// Resolve evalúa la cascada. Si ningún nivel resuelve, el precio es cero con
// nivel BASE: nunca es un error para un par cliente/producto existente.
// Lecturas sin bloqueo; la consistencia eventual es aceptable aquí.
func (uc *ResolvePriceUseCase) Resolve(ctx context.Context, customerID, productID string) (decimal.Decimal, Tier, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, "", err
	}
	if product == nil {
		return decimal.Zero, "", domain.ErrNotFound
	}

	// Venta de mostrador: sin cliente solo aplica el precio base.
	if customerID == "" {
		return product.BasePrice, TierBase, nil
	}

	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return decimal.Zero, "", err
	}
	if customer == nil {
		return decimal.Zero, "", domain.ErrNotFound
	}

	now := uc.now()

	// 1. HISTORY: precio de la línea más reciente en pedidos no cancelados.
	if last, err := uc.orderRepo.LastUnitPrice(customerID, productID, now); err != nil {
		return decimal.Zero, "", err
	} else if last != nil {
		return *last, TierHistory, nil
	}

	// 2. CUSTOM: precio pactado con ventana de validez que contenga "ahora".
	prices, err := uc.priceRepo.ListProductPrices(customerID, productID)
	if err != nil {
		return decimal.Zero, "", err
	}
	for _, p := range prices {
		if p.ActiveAt(now) {
			return p.Price, TierCustom, nil
		}
	}

	// 3. RULE: regla por marca y formato del producto.
	if rule, err := uc.priceRepo.FindBrandSizeRule(customerID, product.Brand, product.Size); err != nil {
		return decimal.Zero, "", err
	} else if rule != nil {
		return rule.Price, TierRule, nil
	}

	// 4. LIST: lista de precios asignada al cliente.
	if customer.PriceListID != "" {
		item, err := uc.priceListRepo.GetItem(customer.PriceListID, productID)
		if err != nil {
			return decimal.Zero, "", err
		}
		if item != nil {
			return item.Price, TierList, nil
		}
	}

	// 5. BASE: precio base del producto (cero si no está definido).
	return product.BasePrice, TierBase, nil
}
