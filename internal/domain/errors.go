package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrMismatchedLegs       = errors.New("los movimientos del transfer no corresponden")
	ErrReferentialIntegrity = errors.New("el recurso tiene registros dependientes")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
)

// InsufficientStockError rechazo de negocio con las cifras para el cliente:
// stock disponible y cantidad solicitada. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// MismatchedLegsError rechazo del coordinador de transfers: los dos movimientos
// no coinciden en producto o cantidad. Lleva ambos pares para la respuesta.
type MismatchedLegsError struct {
	OutProductID string
	OutQuantity  int64
	InProductID  string
	InQuantity   int64
}

func (e *MismatchedLegsError) Error() string {
	return fmt.Sprintf("transfer inválido: salida (producto %s, cantidad %d) vs entrada (producto %s, cantidad %d)",
		e.OutProductID, e.OutQuantity, e.InProductID, e.InQuantity)
}

func (e *MismatchedLegsError) Unwrap() error { return ErrMismatchedLegs }
