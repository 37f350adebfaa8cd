package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

func mov(id string, kind entity.MovementKind, qty int64) *entity.Movement {
	return &entity.Movement{ID: id, Kind: kind, ProductID: "p1", StoreID: "s1", Quantity: qty}
}

// El fold suma entradas (in y transfer) y resta salidas.
func TestFoldStock_SumaEntradasRestaSalidas(t *testing.T) {
	movements := []*entity.Movement{
		mov("a", entity.MovementIn, 50),
		mov("b", entity.MovementOut, 30),
		mov("c", entity.MovementTransfer, 10),
	}
	assert.Equal(t, int64(30), inventory.FoldStock(movements, ""))
}

// El fold es conmutativo: el resultado no depende del orden de los movimientos.
func TestFoldStock_IndependienteDelOrden(t *testing.T) {
	orden1 := []*entity.Movement{
		mov("a", entity.MovementIn, 50),
		mov("b", entity.MovementOut, 30),
		mov("c", entity.MovementIn, 5),
	}
	orden2 := []*entity.Movement{orden1[2], orden1[0], orden1[1]}
	orden3 := []*entity.Movement{orden1[1], orden1[2], orden1[0]}

	assert.Equal(t, inventory.FoldStock(orden1, ""), inventory.FoldStock(orden2, ""))
	assert.Equal(t, inventory.FoldStock(orden1, ""), inventory.FoldStock(orden3, ""))
}

// La exclusión omite la contribución del movimiento indicado: es el cálculo
// hipotético de updates y deletes.
func TestFoldStock_Excluyendo(t *testing.T) {
	movements := []*entity.Movement{
		mov("a", entity.MovementIn, 50),
		mov("b", entity.MovementOut, 30),
	}
	assert.Equal(t, int64(-30), inventory.FoldStock(movements, "a"),
		"sin la entrada, el fold hipotético queda negativo")
	assert.Equal(t, int64(50), inventory.FoldStock(movements, "b"))
	assert.Equal(t, int64(20), inventory.FoldStock(movements, ""))
}

func TestFoldStock_LedgerVacio(t *testing.T) {
	assert.Equal(t, int64(0), inventory.FoldStock(nil, ""))
}
