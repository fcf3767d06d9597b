package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo de referencias. El stock
// no se edita por aquí: solo mutan confirmaciones y recepciones.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea una referencia. El código es único; PiecesPerCarton se guarda
// crudo (la normalización de empaque ocurre al usarlo, nunca al guardarlo).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !in.PiecesPerCarton.IsPositive() || !in.CartonsPerPallet.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.BasePrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Code:             in.Code,
		Name:             in.Name,
		Brand:            in.Brand,
		Size:             in.Size,
		PiecesPerCarton:  in.PiecesPerCarton,
		CartonsPerPallet: in.CartonsPerPallet,
		BasePrice:        in.BasePrice,
		PurchasePrice:    in.PurchasePrice,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene una referencia por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza una referencia (parcial). Editar los ratios de empaque
// solo afecta líneas futuras; las históricas conservan su pivote en piezas.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Size != nil {
		product.Size = *in.Size
	}
	if in.PiecesPerCarton != nil {
		if !in.PiecesPerCarton.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product.PiecesPerCarton = *in.PiecesPerCarton
	}
	if in.CartonsPerPallet != nil {
		if !in.CartonsPerPallet.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product.CartonsPerPallet = *in.CartonsPerPallet
	}
	if in.BasePrice != nil {
		if in.BasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.BasePrice = *in.BasePrice
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista referencias con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete elimina una referencia sin historia. Con líneas de pedido, de compra
// o movimientos que la referencien, el borrado se bloquea.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	has, err := uc.repo.HasReferences(id)
	if err != nil {
		return err
	}
	if has {
		return domain.ErrHasReferences
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	pack := p.Packaging()
	return &dto.ProductResponse{
		ID:                 p.ID,
		Code:               p.Code,
		Name:               p.Name,
		Brand:              p.Brand,
		Size:               p.Size,
		PiecesPerCarton:    p.PiecesPerCarton,
		CartonsPerPallet:   p.CartonsPerPallet,
		EffPiecesPerCarton: pack.PiecesPerCarton,
		EffAreaPerPiece:    pack.AreaPerPiece,
		BasePrice:          p.BasePrice,
		PurchasePrice:      p.PurchasePrice,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
