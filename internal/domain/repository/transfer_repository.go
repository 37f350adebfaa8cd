package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para Transfer (DIP).
// La relación movimiento↔transfer es uno a uno: Create/Update devuelven
// domain.ErrDuplicate si alguna pata ya pertenece a otro transfer.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetByMovement devuelve el transfer que referencia al movimiento (cualquier pata), o nil.
	GetByMovement(movementID string) (*entity.Transfer, error)
	Update(transfer *entity.Transfer) error
	List(limit, offset int) ([]*entity.Transfer, error)
	Delete(id string) error
}
