package entity

import "time"

// Store representa un almacén o punto de stock. Mismo ciclo de vida que Product:
// eliminable solo sin movimientos dependientes.
type Store struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
