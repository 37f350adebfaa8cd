package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el ledger de movimientos.
// El ledger es el único recurso mutable compartido; toda mutación pasa por el validador.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	Update(movement *entity.Movement) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Movement, error)
	// ListByPartition devuelve todos los movimientos de la partición (producto, almacén),
	// insumo del fold de stock.
	ListByPartition(productID, storeID string) ([]*entity.Movement, error)
	// SummarizeStock agrega el ledger por (producto, almacén): el fold hecho en la
	// fuente de datos. Filtros vacíos = sin filtro.
	SummarizeStock(productID, storeID string) ([]*entity.StockLevel, error)
	CountByProduct(productID string) (int64, error)
	CountByStore(storeID string) (int64, error)
}
