package inventory

import (
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// StockProjector deriva el stock actual de una partición (producto, almacén)
// plegando el ledger: suma entradas (in/transfer) y resta salidas (out).
// Fold puro y conmutativo: el resultado no depende del orden de los movimientos.
type StockProjector struct {
	movements repository.MovementRepository
}

// NewStockProjector construye el proyector sobre un repositorio de movimientos
// (atado al pool o a una transacción).
func NewStockProjector(movements repository.MovementRepository) *StockProjector {
	return &StockProjector{movements: movements}
}

// FoldStock pliega un conjunto de movimientos, omitiendo opcionalmente uno por ID
// (excludeID vacío = sin exclusión). Puede devolver un valor negativo: es el
// stock "hipotético" usado para decidir rechazos, nunca un estado comprometido.
func FoldStock(movements []*entity.Movement, excludeID string) int64 {
	var total int64
	for _, m := range movements {
		if excludeID != "" && m.ID == excludeID {
			continue
		}
		total += m.Delta()
	}
	return total
}

// CurrentStock devuelve el stock actual de la partición (producto, almacén).
func (p *StockProjector) CurrentStock(productID, storeID string) (int64, error) {
	movements, err := p.movements.ListByPartition(productID, storeID)
	if err != nil {
		return 0, err
	}
	return FoldStock(movements, ""), nil
}

// CurrentStockExcluding devuelve el stock de la partición omitiendo la contribución
// de un movimiento; usado por la validación de updates para recalcular el stock
// sin el registro que se está editando.
func (p *StockProjector) CurrentStockExcluding(productID, storeID, excludeID string) (int64, error) {
	movements, err := p.movements.ListByPartition(productID, storeID)
	if err != nil {
		return 0, err
	}
	return FoldStock(movements, excludeID), nil
}
