package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo almacenes en memoria.
type StoreRepo struct {
	mu     sync.RWMutex
	stores map[string]*entity.Store
}

func NewStoreRepository() *StoreRepo {
	return &StoreRepo{stores: make(map[string]*entity.Store)}
}

func (r *StoreRepo) Create(store *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *store
	r.stores[store.ID] = &clone
	return nil
}

func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *StoreRepo) Update(store *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *store
	r.stores[store.ID] = &clone
	return nil
}

func (r *StoreRepo) List(limit, offset int) ([]*entity.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Store, 0, len(r.stores))
	for _, s := range r.stores {
		clone := *s
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *StoreRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, id)
	return nil
}
