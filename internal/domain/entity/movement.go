package entity

import "time"

// MovementKind tipo de movimiento de stock (variante cerrada, no string libre).
type MovementKind string

// Tipos de movimiento. "transfer" es la pata entrante heredada de transfers
// antiguos y suma en el fold, igual que "in"; la pata saliente se registra como "out".
const (
	MovementIn       MovementKind = "in"
	MovementOut      MovementKind = "out"
	MovementTransfer MovementKind = "transfer"
)

// Valid reporta si el tipo es una de las tres variantes definidas.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementIn, MovementOut, MovementTransfer:
		return true
	}
	return false
}

// Sign devuelve el signo con el que la cantidad del movimiento entra al fold
// de stock: +1 para in/transfer, -1 para out.
func (k MovementKind) Sign() int64 {
	switch k {
	case MovementIn, MovementTransfer:
		return 1
	case MovementOut:
		return -1
	}
	return 0
}

// Movement es una anotación del libro de movimientos (ledger append-only):
// una entrada, salida o pata de transfer de un producto en un almacén.
// ReferenceID enlaza opcionalmente con una demanda de reposición o un transfer.
type Movement struct {
	ID          string
	Kind        MovementKind
	ProductID   string
	StoreID     string
	Quantity    int64 // siempre positiva; el signo lo aporta Kind
	UserID      string
	ReferenceID *string
	CreatedAt   time.Time
}

// Delta contribución del movimiento al stock de su partición (producto, almacén).
func (m *Movement) Delta() int64 {
	return m.Kind.Sign() * m.Quantity
}
