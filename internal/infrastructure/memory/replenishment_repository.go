package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

// ReplenishmentRepo demandas de reposición en memoria.
type ReplenishmentRepo struct {
	mu       sync.RWMutex
	requests map[string]*entity.ReplenishmentRequest
}

func NewReplenishmentRepository() *ReplenishmentRepo {
	return &ReplenishmentRepo{requests: make(map[string]*entity.ReplenishmentRequest)}
}

func (r *ReplenishmentRepo) Create(request *entity.ReplenishmentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *request
	r.requests[request.ID] = &clone
	return nil
}

func (r *ReplenishmentRepo) GetByID(id string) (*entity.ReplenishmentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	clone := *req
	return &clone, nil
}

func (r *ReplenishmentRepo) Update(request *entity.ReplenishmentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *request
	r.requests[request.ID] = &clone
	return nil
}

// List ordena por prioridad (urgent > high > normal > low) y, a igual
// prioridad, por fecha de creación descendente.
func (r *ReplenishmentRepo) List(limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.ReplenishmentRequest, 0, len(r.requests))
	for _, req := range r.requests {
		clone := *req
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Priority.Weight() != all[j].Priority.Weight() {
			return all[i].Priority.Weight() > all[j].Priority.Weight()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

func (r *ReplenishmentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, id)
	return nil
}

func (r *ReplenishmentRepo) CountByProduct(productID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, req := range r.requests {
		if req.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *ReplenishmentRepo) CountByStore(storeID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, req := range r.requests {
		if req.StoreID == storeID {
			count++
		}
	}
	return count, nil
}
