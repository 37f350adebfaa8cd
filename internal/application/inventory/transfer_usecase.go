package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TransferUseCase coordina transfers: enlaza una pata de salida y una de entrada
// ya registradas por el validador (la salida ya pasó el control de stock).
// Su único invariante añadido es la equivalencia de patas: mismo producto y
// misma cantidad, y cada movimiento en a lo sumo un transfer.
type TransferUseCase struct {
	movements repository.MovementRepository
	transfers repository.TransferRepository
}

// NewTransferUseCase construye el coordinador.
func NewTransferUseCase(movements repository.MovementRepository, transfers repository.TransferRepository) *TransferUseCase {
	return &TransferUseCase{movements: movements, transfers: transfers}
}

// CreateTransfer valida las patas y persiste el transfer.
// Precondiciones en orden: ambos movimientos existen (ErrNotFound), la pata de
// salida es out y la de entrada es in/transfer (ErrInvalidInput), y coinciden
// producto y cantidad (MismatchedLegsError).
func (uc *TransferUseCase) CreateTransfer(outMovementID, inMovementID string, createdAt *time.Time) (*entity.Transfer, error) {
	if outMovementID == "" || inMovementID == "" || outMovementID == inMovementID {
		return nil, domain.ErrInvalidInput
	}
	if _, _, err := uc.validateLegs(outMovementID, inMovementID); err != nil {
		return nil, err
	}

	when := time.Now()
	if createdAt != nil {
		when = *createdAt
	}
	transfer := &entity.Transfer{
		ID:            uuid.New().String(),
		OutMovementID: outMovementID,
		InMovementID:  inMovementID,
		CreatedAt:     when,
	}
	if err := uc.transfers.Create(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// UpdateTransfer re-valida la equivalencia contra las patas (posiblemente nuevas).
func (uc *TransferUseCase) UpdateTransfer(id, outMovementID, inMovementID string) (*entity.Transfer, error) {
	transfer, err := uc.transfers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	if outMovementID == "" || inMovementID == "" || outMovementID == inMovementID {
		return nil, domain.ErrInvalidInput
	}
	if _, _, err := uc.validateLegs(outMovementID, inMovementID); err != nil {
		return nil, err
	}
	transfer.OutMovementID = outMovementID
	transfer.InMovementID = inMovementID
	if err := uc.transfers.Update(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// GetTransfer obtiene un transfer por ID.
func (uc *TransferUseCase) GetTransfer(id string) (*entity.Transfer, error) {
	transfer, err := uc.transfers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// ListTransfers lista transfers con paginación.
func (uc *TransferUseCase) ListTransfers(limit, offset int) ([]*entity.Transfer, error) {
	return uc.transfers.List(limit, offset)
}

// DeleteTransfer elimina un transfer; libera sus patas para otros transfers.
func (uc *TransferUseCase) DeleteTransfer(id string) error {
	transfer, err := uc.transfers.GetByID(id)
	if err != nil {
		return err
	}
	if transfer == nil {
		return domain.ErrNotFound
	}
	return uc.transfers.Delete(id)
}

// validateLegs carga ambas patas y comprueba existencia, tipos y equivalencia.
func (uc *TransferUseCase) validateLegs(outMovementID, inMovementID string) (*entity.Movement, *entity.Movement, error) {
	out, err := uc.movements.GetByID(outMovementID)
	if err != nil {
		return nil, nil, err
	}
	in, err := uc.movements.GetByID(inMovementID)
	if err != nil {
		return nil, nil, err
	}
	if out == nil || in == nil {
		return nil, nil, domain.ErrNotFound
	}
	if out.Kind != entity.MovementOut {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.MovementIn && in.Kind != entity.MovementTransfer {
		return nil, nil, domain.ErrInvalidInput
	}
	if out.ProductID != in.ProductID || out.Quantity != in.Quantity {
		return nil, nil, &domain.MismatchedLegsError{
			OutProductID: out.ProductID,
			OutQuantity:  out.Quantity,
			InProductID:  in.ProductID,
			InQuantity:   in.Quantity,
		}
	}
	return out, in, nil
}
