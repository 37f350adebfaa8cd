package entity

import "time"

// Product representa un producto del catálogo de almacén.
// El identificador es inmutable; los campos descriptivos se pueden editar.
// Solo se puede eliminar cuando ningún movimiento lo referencia.
type Product struct {
	ID                string
	Name              string
	Category          string
	Supplier          string
	ExpiryDate        *time.Time // fecha de caducidad (opcional)
	CriticalThreshold *int64     // cantidad mínima deseada en stock (opcional)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
