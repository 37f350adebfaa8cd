package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ReplenishmentRepository define el puerto de persistencia para demandas de reposición.
type ReplenishmentRepository interface {
	Create(request *entity.ReplenishmentRequest) error
	GetByID(id string) (*entity.ReplenishmentRequest, error)
	Update(request *entity.ReplenishmentRequest) error
	// List devuelve las demandas ordenadas por prioridad (urgent > high > normal > low)
	// y, a igual prioridad, por fecha de creación descendente.
	List(limit, offset int) ([]*entity.ReplenishmentRequest, error)
	Delete(id string) error
	CountByProduct(productID string) (int64, error)
	CountByStore(storeID string) (int64, error)
}
