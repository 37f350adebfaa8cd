package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
)

type productFixture struct {
	uc             *usecase.ProductUseCase
	movements      *memory.MovementRepo
	replenishments *memory.ReplenishmentRepo
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	movements := memory.NewMovementRepository()
	replenishments := memory.NewReplenishmentRepository()
	return &productFixture{
		uc:             usecase.NewProductUseCase(memory.NewProductRepository(), movements, replenishments),
		movements:      movements,
		replenishments: replenishments,
	}
}

func TestCreateProduct_CamposOpcionales(t *testing.T) {
	f := newProductFixture(t)
	threshold := int64(10)
	expiry := time.Now().AddDate(0, 6, 0)

	out, err := f.uc.Create(dto.CreateProductRequest{
		Name: "Harina 1kg", Category: "secos", Supplier: "Molinos SA",
		ExpiryDate: &expiry, CriticalThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	require.NotNil(t, out.CriticalThreshold)
	assert.Equal(t, int64(10), *out.CriticalThreshold)
}

func TestCreateProduct_EntradaInvalida(t *testing.T) {
	f := newProductFixture(t)
	_, err := f.uc.Create(dto.CreateProductRequest{Name: "", Category: "secos", Supplier: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := int64(-1)
	_, err = f.uc.Create(dto.CreateProductRequest{Name: "A", Category: "secos", Supplier: "X", CriticalThreshold: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "umbral crítico negativo")
}

// Un producto referenciado por el ledger no puede borrarse.
func TestDeleteProduct_ProtegidoPorMovimientos(t *testing.T) {
	f := newProductFixture(t)
	out, err := f.uc.Create(dto.CreateProductRequest{Name: "Harina 1kg", Category: "secos", Supplier: "Molinos SA"})
	require.NoError(t, err)

	require.NoError(t, f.movements.Create(&entity.Movement{
		ID: uuid.NewString(), Kind: entity.MovementIn, ProductID: out.ID, StoreID: uuid.NewString(), Quantity: 5, CreatedAt: time.Now(),
	}))

	err = f.uc.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	still, err := f.uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.NotNil(t, still, "el producto sigue existiendo tras el rechazo")
}

// Las demandas de reposición pendientes también protegen al producto.
func TestDeleteProduct_ProtegidoPorDemandas(t *testing.T) {
	f := newProductFixture(t)
	out, err := f.uc.Create(dto.CreateProductRequest{Name: "Harina 1kg", Category: "secos", Supplier: "Molinos SA"})
	require.NoError(t, err)

	require.NoError(t, f.replenishments.Create(&entity.ReplenishmentRequest{
		ID: uuid.NewString(), ProductID: out.ID, StoreID: uuid.NewString(), Quantity: 5,
		Priority: entity.PriorityNormal, Status: entity.StatusPending, UserID: uuid.NewString(), CreatedAt: time.Now(),
	}))

	err = f.uc.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

func TestDeleteProduct_SinReferencias(t *testing.T) {
	f := newProductFixture(t)
	out, err := f.uc.Create(dto.CreateProductRequest{Name: "Harina 1kg", Category: "secos", Supplier: "Molinos SA"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(out.ID))
	gone, err := f.uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeleteProduct_NoExiste(t *testing.T) {
	f := newProductFixture(t)
	assert.ErrorIs(t, f.uc.Delete(uuid.NewString()), domain.ErrNotFound)
}

func TestUpdateProduct_CamposParciales(t *testing.T) {
	f := newProductFixture(t)
	created, err := f.uc.Create(dto.CreateProductRequest{Name: "Harina 1kg", Category: "secos", Supplier: "Molinos SA"})
	require.NoError(t, err)

	name := "Harina integral 1kg"
	out, err := f.uc.Update(created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Harina integral 1kg", out.Name)
	assert.Equal(t, "secos", out.Category, "los campos no enviados se conservan")
}
