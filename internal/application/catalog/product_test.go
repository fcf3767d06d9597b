package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distribuidora-pro/internal/application/catalog"
	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

type fakeProductRepo struct {
	repository.ProductRepository
	byID       map[string]*entity.Product
	byCode     map[string]*entity.Product
	referenced map[string]bool
	deleted    []string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		byID:       map[string]*entity.Product{},
		byCode:     map[string]*entity.Product{},
		referenced: map[string]bool{},
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.byID[p.ID] = p
	r.byCode[p.Code] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)     { return r.byID[id], nil }
func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) { return r.byCode[code], nil }
func (r *fakeProductRepo) Update(p *entity.Product) error                 { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) HasReferences(id string) (bool, error)          { return r.referenced[id], nil }

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestProductCreate_NormalizaEnLaRespuesta(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo)

	// 1.42 m² por caja en un 45/45: el crudo se guarda intacto y la
	// respuesta expone los efectivos (7 piezas, ~0.2029 m²/pieza).
	resp, err := uc.Create(dto.CreateProductRequest{
		Code: "CER-4545", Name: "Piso 45x45", Size: "45/45",
		PiecesPerCarton: d("1.42"), CartonsPerPallet: d("64"), BasePrice: d("10"),
	})
	require.NoError(t, err)
	assert.True(t, resp.PiecesPerCarton.Equal(d("1.42")), "el crudo no se reescribe")
	assert.True(t, resp.EffPiecesPerCarton.Equal(d("7")))
	assert.True(t, resp.EffAreaPerPiece.GreaterThan(d("0.20")))
	assert.True(t, resp.EffAreaPerPiece.LessThan(d("0.21")))

	stored := repo.byCode["CER-4545"]
	require.NotNil(t, stored)
	assert.True(t, stored.PiecesPerCarton.Equal(d("1.42")))
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo)

	in := dto.CreateProductRequest{
		Code: "CER-001", Name: "Piso", Size: "60/60",
		PiecesPerCarton: d("4"), CartonsPerPallet: d("36"), BasePrice: d("10"),
	}
	_, err := uc.Create(in)
	require.NoError(t, err)
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductDelete_BloqueadoConHistoria(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo)

	resp, err := uc.Create(dto.CreateProductRequest{
		Code: "CER-002", Name: "Piso", Size: "60/60",
		PiecesPerCarton: d("4"), CartonsPerPallet: d("36"), BasePrice: d("10"),
	})
	require.NoError(t, err)

	repo.referenced[resp.ID] = true
	err = uc.Delete(resp.ID)
	assert.ErrorIs(t, err, domain.ErrHasReferences)
	assert.Empty(t, repo.deleted)

	repo.referenced[resp.ID] = false
	require.NoError(t, uc.Delete(resp.ID))
	assert.Equal(t, []string{resp.ID}, repo.deleted)
}

func TestProductUpdate_RatiosInvalidos(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo)

	resp, err := uc.Create(dto.CreateProductRequest{
		Code: "CER-003", Name: "Piso", Size: "60/60",
		PiecesPerCarton: d("4"), CartonsPerPallet: d("36"), BasePrice: d("10"),
	})
	require.NoError(t, err)

	zero := decimal.Zero
	_, err = uc.Update(resp.ID, dto.UpdateProductRequest{PiecesPerCarton: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(resp.ID, dto.UpdateProductRequest{})
	assert.NoError(t, err)
}
