// Package memory implementa los puertos de persistencia en maps protegidos por
// mutex. Se usa en los tests de use cases y handlers; el comportamiento
// observable (nil en ausencia, ErrDuplicate en patas repetidas, orden de
// listados) replica al adaptador de PostgreSQL.
package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos en memoria.
type MovementRepo struct {
	mu        sync.RWMutex
	movements map[string]*entity.Movement
}

func NewMovementRepository() *MovementRepo {
	return &MovementRepo{movements: make(map[string]*entity.Movement)}
}

func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *movement
	r.movements[movement.ID] = &clone
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movements[id]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (r *MovementRepo) Update(movement *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *movement
	r.movements[movement.ID] = &clone
	return nil
}

func (r *MovementRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.movements, id)
	return nil
}

func (r *MovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.snapshot()
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *MovementRepo) ListByPartition(productID, storeID string) ([]*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID && m.StoreID == storeID {
			clone := *m
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *MovementRepo) SummarizeStock(productID, storeID string) ([]*entity.StockLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	type key struct{ product, store string }
	acc := make(map[key]*entity.StockLevel)
	for _, m := range r.movements {
		if productID != "" && m.ProductID != productID {
			continue
		}
		if storeID != "" && m.StoreID != storeID {
			continue
		}
		k := key{m.ProductID, m.StoreID}
		level, ok := acc[k]
		if !ok {
			level = &entity.StockLevel{ProductID: m.ProductID, StoreID: m.StoreID}
			acc[k] = level
		}
		level.Quantity += m.Delta()
		if m.CreatedAt.After(level.UpdatedAt) {
			level.UpdatedAt = m.CreatedAt
		}
	}
	levels := make([]*entity.StockLevel, 0, len(acc))
	for _, l := range acc {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].ProductID != levels[j].ProductID {
			return levels[i].ProductID < levels[j].ProductID
		}
		return levels[i].StoreID < levels[j].StoreID
	})
	return levels, nil
}

func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *MovementRepo) CountByStore(storeID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, m := range r.movements {
		if m.StoreID == storeID {
			count++
		}
	}
	return count, nil
}

func (r *MovementRepo) snapshot() []*entity.Movement {
	all := make([]*entity.Movement, 0, len(r.movements))
	for _, m := range r.movements {
		clone := *m
		all = append(all, &clone)
	}
	return all
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
