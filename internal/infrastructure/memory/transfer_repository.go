package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo transfers en memoria; impone la relación uno a uno
// movimiento↔transfer igual que los índices únicos de PostgreSQL.
type TransferRepo struct {
	mu        sync.RWMutex
	transfers map[string]*entity.Transfer
}

func NewTransferRepository() *TransferRepo {
	return &TransferRepo{transfers: make(map[string]*entity.Transfer)}
}

func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkLegsFree(transfer); err != nil {
		return err
	}
	clone := *transfer
	r.transfers[transfer.ID] = &clone
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (r *TransferRepo) GetByMovement(movementID string) (*entity.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transfers {
		if t.OutMovementID == movementID || t.InMovementID == movementID {
			clone := *t
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *TransferRepo) Update(transfer *entity.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkLegsFree(transfer); err != nil {
		return err
	}
	clone := *transfer
	r.transfers[transfer.ID] = &clone
	return nil
}

func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Transfer, 0, len(r.transfers))
	for _, t := range r.transfers {
		clone := *t
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *TransferRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.transfers, id)
	return nil
}

// checkLegsFree requiere r.mu tomado en escritura.
func (r *TransferRepo) checkLegsFree(transfer *entity.Transfer) error {
	for _, t := range r.transfers {
		if t.ID == transfer.ID {
			continue
		}
		for _, leg := range []string{transfer.OutMovementID, transfer.InMovementID} {
			if t.OutMovementID == leg || t.InMovementID == leg {
				return fmt.Errorf("%w: el movimiento %s ya pertenece a otro transfer", domain.ErrDuplicate, leg)
			}
		}
	}
	return nil
}
