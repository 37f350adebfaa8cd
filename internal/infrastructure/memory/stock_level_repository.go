package memory

import (
	"sync"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo filas materializadas de stock en memoria. En este adaptador
// GetForUpdate no bloquea nada: la serialización en memoria la aporta el
// keyed-lock del use case.
type StockLevelRepo struct {
	mu     sync.RWMutex
	levels map[string]*entity.StockLevel
}

func NewStockLevelRepository() *StockLevelRepo {
	return &StockLevelRepo{levels: make(map[string]*entity.StockLevel)}
}

func levelKey(productID, storeID string) string { return productID + "|" + storeID }

func (r *StockLevelRepo) Get(productID, storeID string) (*entity.StockLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.levels[levelKey(productID, storeID)]
	if !ok {
		return &entity.StockLevel{ProductID: productID, StoreID: storeID}, nil
	}
	clone := *l
	return &clone, nil
}

func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *level
	clone.UpdatedAt = time.Now()
	r.levels[levelKey(level.ProductID, level.StoreID)] = &clone
	return nil
}

func (r *StockLevelRepo) GetForUpdate(productID, storeID string) (*entity.StockLevel, error) {
	return r.Get(productID, storeID)
}
