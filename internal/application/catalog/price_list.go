package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// PriceListUseCase listas de precios asignables a clientes y sus ítems.
type PriceListUseCase struct {
	repo        repository.PriceListRepository
	productRepo repository.ProductRepository
}

// NewPriceListUseCase construye el caso de uso.
func NewPriceListUseCase(repo repository.PriceListRepository, productRepo repository.ProductRepository) *PriceListUseCase {
	return &PriceListUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una lista de precios vacía.
func (uc *PriceListUseCase) Create(in dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	now := time.Now()
	list := &entity.PriceList{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(list); err != nil {
		return nil, err
	}
	return toPriceListResponse(list), nil
}

// GetByID obtiene una lista por ID.
func (uc *PriceListUseCase) GetByID(id string) (*dto.PriceListResponse, error) {
	list, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}
	return toPriceListResponse(list), nil
}

// List lista las listas de precios con paginación.
func (uc *PriceListUseCase) List(page dto.PageRequest) ([]*dto.PriceListResponse, error) {
	page.DefaultPage()
	lists, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PriceListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, toPriceListResponse(l))
	}
	return out, nil
}

// SetItem fija (o reemplaza) el precio de un producto dentro de la lista.
func (uc *PriceListUseCase) SetItem(priceListID string, in dto.SetPriceListItemRequest) error {
	if !in.Price.IsPositive() {
		return domain.ErrInvalidInput
	}
	list, err := uc.repo.GetByID(priceListID)
	if err != nil {
		return err
	}
	if list == nil {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.UpsertItem(&entity.PriceListItem{
		PriceListID: priceListID,
		ProductID:   in.ProductID,
		Price:       in.Price,
		UpdatedAt:   time.Now(),
	})
}

func toPriceListResponse(l *entity.PriceList) *dto.PriceListResponse {
	return &dto.PriceListResponse{
		ID:        l.ID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
	}
}
