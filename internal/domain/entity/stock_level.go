package entity

import "time"

// StockLevel stock actual de un producto en un almacén. Entidad derivada:
// la fuente de verdad es el fold del ledger; la fila materializada se
// recalcula en cada escritura y sirve de ancla de bloqueo y lectura rápida.
type StockLevel struct {
	ProductID string
	StoreID   string
	Quantity  int64
	UpdatedAt time.Time
}
