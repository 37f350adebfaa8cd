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

type storeFixture struct {
	uc        *usecase.StoreUseCase
	movements *memory.MovementRepo
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	movements := memory.NewMovementRepository()
	return &storeFixture{
		uc:        usecase.NewStoreUseCase(memory.NewStoreRepository(), movements, memory.NewReplenishmentRepository()),
		movements: movements,
	}
}

func TestCreateStore_EntradaInvalida(t *testing.T) {
	f := newStoreFixture(t)
	_, err := f.uc.Create(dto.CreateStoreRequest{Name: "", Location: "Calle 1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Create(dto.CreateStoreRequest{Name: "Central", Location: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un almacén referenciado por el ledger no puede borrarse.
func TestDeleteStore_ProtegidoPorMovimientos(t *testing.T) {
	f := newStoreFixture(t)
	out, err := f.uc.Create(dto.CreateStoreRequest{Name: "Central", Location: "Calle 1"})
	require.NoError(t, err)

	require.NoError(t, f.movements.Create(&entity.Movement{
		ID: uuid.NewString(), Kind: entity.MovementIn, ProductID: uuid.NewString(), StoreID: out.ID, Quantity: 5, CreatedAt: time.Now(),
	}))

	assert.ErrorIs(t, f.uc.Delete(out.ID), domain.ErrReferentialIntegrity)
}

func TestDeleteStore_SinReferencias(t *testing.T) {
	f := newStoreFixture(t)
	out, err := f.uc.Create(dto.CreateStoreRequest{Name: "Central", Location: "Calle 1"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(out.ID))
	gone, err := f.uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
