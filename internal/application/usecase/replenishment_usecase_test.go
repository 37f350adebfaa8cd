package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
)

const (
	testProductID = "11111111-1111-1111-1111-111111111111"
	testStoreID   = "22222222-2222-2222-2222-222222222222"
	testUserID    = "44444444-4444-4444-4444-444444444444"
)

func newReplenishmentUC(t *testing.T) *usecase.ReplenishmentUseCase {
	t.Helper()
	products := memory.NewProductRepository()
	stores := memory.NewStoreRepository()
	require.NoError(t, products.Create(&entity.Product{ID: testProductID, Name: "Harina 1kg"}))
	require.NoError(t, stores.Create(&entity.Store{ID: testStoreID, Name: "Central"}))
	return usecase.NewReplenishmentUseCase(memory.NewReplenishmentRepository(), products, stores)
}

func createRequest(t *testing.T, uc *usecase.ReplenishmentUseCase, qty int64, priority string) *dto.ReplenishmentResponse {
	t.Helper()
	out, err := uc.Create(testUserID, dto.CreateReplenishmentRequest{
		ProductID: testProductID, StoreID: testStoreID, Quantity: qty, Priority: priority,
	})
	require.NoError(t, err)
	return out
}

// Una demanda nueva nace en pending con prioridad normal si no se indica otra.
func TestCreateReplenishment_Defaults(t *testing.T) {
	uc := newReplenishmentUC(t)
	out := createRequest(t, uc, 40, "")
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "normal", out.Priority)
	assert.Equal(t, testUserID, out.UserID)
}

func TestCreateReplenishment_EntradaInvalida(t *testing.T) {
	uc := newReplenishmentUC(t)

	_, err := uc.Create(testUserID, dto.CreateReplenishmentRequest{ProductID: testProductID, StoreID: testStoreID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = uc.Create(testUserID, dto.CreateReplenishmentRequest{ProductID: uuid.NewString(), StoreID: testStoreID, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto inexistente")

	_, err = uc.Create(testUserID, dto.CreateReplenishmentRequest{ProductID: testProductID, StoreID: testStoreID, Quantity: 5, Priority: "maxima"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "prioridad desconocida")
}

// Tabla de transiciones: pending→{approved,rejected}, approved→in_progress,
// in_progress→done; todo lo demás se rechaza.
func TestUpdateStatus_TablaDeTransiciones(t *testing.T) {
	uc := newReplenishmentUC(t)

	// Camino feliz completo.
	req := createRequest(t, uc, 10, "high")
	for _, next := range []string{"approved", "in_progress", "done"} {
		out, err := uc.UpdateStatus(req.ID, next)
		require.NoError(t, err, "transición a %s", next)
		assert.Equal(t, next, out.Status)
	}

	// done es terminal.
	_, err := uc.UpdateStatus(req.ID, "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// pending → rejected también es terminal.
	req2 := createRequest(t, uc, 10, "")
	_, err = uc.UpdateStatus(req2.ID, "rejected")
	require.NoError(t, err)
	_, err = uc.UpdateStatus(req2.ID, "approved")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Saltos prohibidos desde pending.
	req3 := createRequest(t, uc, 10, "")
	for _, target := range []string{"in_progress", "done"} {
		_, err = uc.UpdateStatus(req3.ID, target)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending → %s", target)
	}

	// Estado desconocido es entrada inválida, no transición.
	_, err = uc.UpdateStatus(req3.ID, "archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El listado ordena por prioridad, no por orden de llegada.
func TestListReplenishments_OrdenPorPrioridad(t *testing.T) {
	uc := newReplenishmentUC(t)
	createRequest(t, uc, 1, "low")
	createRequest(t, uc, 2, "urgent")
	createRequest(t, uc, 3, "normal")
	createRequest(t, uc, 4, "high")

	out, err := uc.List(10, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 4)
	got := []string{out.Items[0].Priority, out.Items[1].Priority, out.Items[2].Priority, out.Items[3].Priority}
	assert.Equal(t, []string{"urgent", "high", "normal", "low"}, got)
}

// El PUT solo toca cantidad y prioridad; el estado queda como estaba.
func TestUpdateReplenishment_NoCambiaEstado(t *testing.T) {
	uc := newReplenishmentUC(t)
	req := createRequest(t, uc, 10, "low")

	qty := int64(25)
	priority := "urgent"
	out, err := uc.Update(req.ID, dto.UpdateReplenishmentRequest{Quantity: &qty, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.Quantity)
	assert.Equal(t, "urgent", out.Priority)
	assert.Equal(t, "pending", out.Status)
}

func TestReplenishment_NoExiste(t *testing.T) {
	uc := newReplenishmentUC(t)
	_, err := uc.GetByID(uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.UpdateStatus(uuid.NewString(), "approved")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = uc.Delete(uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
