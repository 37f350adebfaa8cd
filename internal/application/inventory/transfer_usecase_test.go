package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

type transferFixture struct {
	ledger *ledgerFixture
	uc     *inventory.TransferUseCase
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	ledger := newLedgerFixture(t)
	return &transferFixture{
		ledger: ledger,
		uc:     inventory.NewTransferUseCase(ledger.movements, ledger.transfers),
	}
}

// pairedLegs registra una pata out y una in equivalentes, listas para emparejar.
func (f *transferFixture) pairedLegs(t *testing.T, qty int64) (out, in *entity.Movement) {
	t.Helper()
	f.ledger.register(t, entity.MovementIn, qty+50) // fondo para que la salida pase
	out = f.ledger.register(t, entity.MovementOut, qty)
	in = f.ledger.register(t, entity.MovementIn, qty)
	return out, in
}

// Patas equivalentes (mismo producto, misma cantidad) se emparejan.
func TestCreateTransfer_PatasEquivalentes(t *testing.T) {
	f := newTransferFixture(t)
	out, in := f.pairedLegs(t, 10)

	transfer, err := f.uc.CreateTransfer(out.ID, in.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, out.ID, transfer.OutMovementID)
	assert.Equal(t, in.ID, transfer.InMovementID)
	assert.NotEmpty(t, transfer.ID)
}

// Cantidades distintas rechazan con las cifras de ambas patas.
func TestCreateTransfer_CantidadesDistintas(t *testing.T) {
	f := newTransferFixture(t)
	f.ledger.register(t, entity.MovementIn, 50)
	out := f.ledger.register(t, entity.MovementOut, 10)
	in := f.ledger.register(t, entity.MovementIn, 12)

	_, err := f.uc.CreateTransfer(out.ID, in.ID, nil)
	var mismatched *domain.MismatchedLegsError
	require.ErrorAs(t, err, &mismatched)
	assert.Equal(t, int64(10), mismatched.OutQuantity)
	assert.Equal(t, int64(12), mismatched.InQuantity)
	assert.ErrorIs(t, err, domain.ErrMismatchedLegs)
}

// Productos distintos rechazan aunque las cantidades coincidan.
func TestCreateTransfer_ProductosDistintos(t *testing.T) {
	f := newTransferFixture(t)
	f.ledger.register(t, entity.MovementIn, 50)
	out := f.ledger.register(t, entity.MovementOut, 10)
	in, err := f.ledger.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		Kind: entity.MovementIn, ProductID: testProduct2ID, StoreID: testStore2ID, Quantity: 10, UserID: testUserID,
	})
	require.NoError(t, err)

	_, err = f.uc.CreateTransfer(out.ID, in.ID, nil)
	var mismatched *domain.MismatchedLegsError
	require.ErrorAs(t, err, &mismatched)
	assert.Equal(t, testProductID, mismatched.OutProductID)
	assert.Equal(t, testProduct2ID, mismatched.InProductID)
	assert.NotEqual(t, mismatched.OutProductID, mismatched.InProductID)
	assert.ErrorIs(t, err, domain.ErrMismatchedLegs)
}

// Los tipos de las patas importan: out debe ser salida, in debe ser entrada.
func TestCreateTransfer_TiposDePata(t *testing.T) {
	f := newTransferFixture(t)
	f.ledger.register(t, entity.MovementIn, 50)
	out := f.ledger.register(t, entity.MovementOut, 10)
	in := f.ledger.register(t, entity.MovementIn, 10)
	in2 := f.ledger.register(t, entity.MovementIn, 10)

	_, err := f.uc.CreateTransfer(in.ID, in2.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la pata out debe ser un movimiento out")

	out2 := f.ledger.register(t, entity.MovementOut, 10)
	_, err = f.uc.CreateTransfer(out.ID, out2.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la pata in debe ser in o transfer")
}

// La pata in puede ser un movimiento de tipo transfer (pata entrante histórica).
func TestCreateTransfer_PataTransferComoEntrada(t *testing.T) {
	f := newTransferFixture(t)
	f.ledger.register(t, entity.MovementIn, 50)
	out := f.ledger.register(t, entity.MovementOut, 10)
	in := f.ledger.register(t, entity.MovementTransfer, 10)

	_, err := f.uc.CreateTransfer(out.ID, in.ID, nil)
	assert.NoError(t, err)
}

func TestCreateTransfer_PataInexistente(t *testing.T) {
	f := newTransferFixture(t)
	f.ledger.register(t, entity.MovementIn, 50)
	out := f.ledger.register(t, entity.MovementOut, 10)

	_, err := f.uc.CreateTransfer(out.ID, uuid.NewString(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTransfer_EntradaInvalida(t *testing.T) {
	f := newTransferFixture(t)
	_, err := f.uc.CreateTransfer("", "x", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.CreateTransfer("x", "x", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "las dos patas no pueden ser el mismo movimiento")
}

// Cada movimiento pertenece a lo sumo a un transfer.
func TestCreateTransfer_PataYaEmparejada(t *testing.T) {
	f := newTransferFixture(t)
	out, in := f.pairedLegs(t, 10)
	_, err := f.uc.CreateTransfer(out.ID, in.ID, nil)
	require.NoError(t, err)

	in2 := f.ledger.register(t, entity.MovementIn, 10)
	_, err = f.uc.CreateTransfer(out.ID, in2.ID, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Borrar el transfer libera sus patas para un emparejado nuevo.
func TestDeleteTransfer_LiberaLasPatas(t *testing.T) {
	f := newTransferFixture(t)
	out, in := f.pairedLegs(t, 10)
	transfer, err := f.uc.CreateTransfer(out.ID, in.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteTransfer(transfer.ID))

	_, err = f.uc.CreateTransfer(out.ID, in.ID, nil)
	assert.NoError(t, err)
}

// El update re-valida la equivalencia contra las patas nuevas.
func TestUpdateTransfer_RevalidaPatas(t *testing.T) {
	f := newTransferFixture(t)
	out, in := f.pairedLegs(t, 10)
	transfer, err := f.uc.CreateTransfer(out.ID, in.ID, nil)
	require.NoError(t, err)

	in2 := f.ledger.register(t, entity.MovementIn, 99)
	_, err = f.uc.UpdateTransfer(transfer.ID, out.ID, in2.ID)
	var mismatched *domain.MismatchedLegsError
	assert.ErrorAs(t, err, &mismatched)

	in3 := f.ledger.register(t, entity.MovementIn, 10)
	updated, err := f.uc.UpdateTransfer(transfer.ID, out.ID, in3.ID)
	require.NoError(t, err)
	assert.Equal(t, in3.ID, updated.InMovementID)
}

func TestGetTransfer_NoExiste(t *testing.T) {
	f := newTransferFixture(t)
	_, err := f.uc.GetTransfer(uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = f.uc.DeleteTransfer(uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
