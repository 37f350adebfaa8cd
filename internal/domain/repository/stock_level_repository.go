package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// StockLevelRepository define el puerto para la fila materializada de stock por
// (producto, almacén). Usado dentro de transacciones para garantizar consistencia.
type StockLevelRepository interface {
	Get(productID, storeID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); ancla de
	// serialización entre procesos para la secuencia leer-validar-escribir.
	GetForUpdate(productID, storeID string) (*entity.StockLevel, error)
}
