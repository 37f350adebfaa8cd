package entity

import "time"

// Transfer enlaza una pata de salida y una de entrada como traslado atómico
// entre almacenes. Invariante: ambas patas comparten producto y cantidad,
// y cada movimiento pertenece a lo sumo a un transfer.
type Transfer struct {
	ID            string
	OutMovementID string
	InMovementID  string
	CreatedAt     time.Time
}
