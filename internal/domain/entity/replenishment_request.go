package entity

import "time"

// Prioridades de una demanda de reposición. Campo estático, solo ordena listados.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityNormal RequestPriority = "normal"
	PriorityHigh   RequestPriority = "high"
	PriorityUrgent RequestPriority = "urgent"
)

// Valid reporta si la prioridad es una de las cuatro definidas.
func (p RequestPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Weight peso para ordenar: urgent > high > normal > low.
func (p RequestPriority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	case PriorityLow:
		return 0
	}
	return -1
}

// Estados del flujo de una demanda de reposición.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusApproved   RequestStatus = "approved"
	StatusRejected   RequestStatus = "rejected"
	StatusInProgress RequestStatus = "in_progress"
	StatusDone       RequestStatus = "done"
)

// Valid reporta si el estado es uno de los cinco definidos.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// allowedTransitions tabla explícita de transiciones (from → to) permitidas.
// El origen escribía el estado libremente; aquí se modela como grafo cerrado.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:    {StatusApproved, StatusRejected},
	StatusApproved:   {StatusInProgress},
	StatusInProgress: {StatusDone},
}

// CanTransition reporta si el cambio de estado from → to está permitido.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ReplenishmentRequest demanda de compra/reposición de stock para un producto
// en un almacén. La crea cualquier usuario; las transiciones de estado las
// realizan usuarios privilegiados.
type ReplenishmentRequest struct {
	ID        string
	ProductID string
	StoreID   string
	Quantity  int64 // cantidad solicitada, positiva
	Priority  RequestPriority
	Status    RequestStatus
	UserID    string
	CreatedAt time.Time
}
