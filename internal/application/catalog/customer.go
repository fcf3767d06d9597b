package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes más sus precios pactados (por producto y
// por marca/formato).
type CustomerUseCase struct {
	repo          repository.CustomerRepository
	priceRepo     repository.CustomerPriceRepository
	priceListRepo repository.PriceListRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	priceRepo repository.CustomerPriceRepository,
	priceListRepo repository.PriceListRepository,
) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, priceRepo: priceRepo, priceListRepo: priceListRepo}
}

// Create crea un cliente. El NIT/Cédula es único.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	existing, _ := uc.repo.GetByTaxID(in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.PriceListID != "" {
		list, err := uc.priceListRepo.GetByID(in.PriceListID)
		if err != nil {
			return nil, err
		}
		if list == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		TaxID:       in.TaxID,
		Phone:       in.Phone,
		Address:     in.Address,
		PriceListID: in.PriceListID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza un cliente (parcial). El saldo nunca se edita por aquí.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.PriceListID != nil {
		if *in.PriceListID != "" {
			list, err := uc.priceListRepo.GetByID(*in.PriceListID)
			if err != nil {
				return nil, err
			}
			if list == nil {
				return nil, domain.ErrNotFound
			}
		}
		customer.PriceListID = *in.PriceListID
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente sin pedidos históricos.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	has, err := uc.repo.HasOrders(id)
	if err != nil {
		return err
	}
	if has {
		return domain.ErrHasReferences
	}
	return uc.repo.Delete(id)
}

// SetProductPrice pacta un precio cliente/producto con ventana de validez
// opcional. Precios solapados conviven: la cascada toma el vigente.
func (uc *CustomerUseCase) SetProductPrice(customerID string, in dto.SetCustomerPriceRequest) error {
	if !in.Price.IsPositive() {
		return domain.ErrInvalidInput
	}
	if in.ValidFrom != nil && in.ValidTo != nil && in.ValidTo.Before(*in.ValidFrom) {
		return domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.priceRepo.CreateProductPrice(&entity.CustomerProductPrice{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		ProductID:  in.ProductID,
		Price:      in.Price,
		ValidFrom:  in.ValidFrom,
		ValidTo:    in.ValidTo,
		CreatedAt:  time.Now(),
	})
}

// DeleteProductPrice retira un precio pactado.
func (uc *CustomerUseCase) DeleteProductPrice(priceID string) error {
	return uc.priceRepo.DeleteProductPrice(priceID)
}

// SetBrandSizeRule fija una regla de precio por marca y formato para el
// cliente (aplica a cualquier referencia de esa marca y formato).
func (uc *CustomerUseCase) SetBrandSizeRule(customerID string, in dto.SetBrandSizeRuleRequest) error {
	if !in.Price.IsPositive() || in.Brand == "" || in.Size == "" {
		return domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.priceRepo.CreateBrandSizeRule(&entity.CustomerBrandSizeRule{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Brand:      in.Brand,
		Size:       in.Size,
		Price:      in.Price,
		CreatedAt:  time.Now(),
	})
}

// DeleteBrandSizeRule retira una regla marca/formato.
func (uc *CustomerUseCase) DeleteBrandSizeRule(ruleID string) error {
	return uc.priceRepo.DeleteBrandSizeRule(ruleID)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Phone:          c.Phone,
		Address:        c.Address,
		PriceListID:    c.PriceListID,
		CurrentBalance: c.CurrentBalance,
		CreatedAt:      c.CreatedAt,
	}
}
