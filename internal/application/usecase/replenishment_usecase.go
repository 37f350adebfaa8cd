package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ReplenishmentUseCase gestiona las demandas de reposición: creación por cualquier
// usuario y transiciones de estado gateadas por rol. Los cambios de estado pasan
// por una tabla cerrada de transiciones, no por escritura libre.
type ReplenishmentUseCase struct {
	repo     repository.ReplenishmentRepository
	products repository.ProductRepository
	stores   repository.StoreRepository
}

// NewReplenishmentUseCase construye el caso de uso.
func NewReplenishmentUseCase(
	repo repository.ReplenishmentRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repo: repo, products: products, stores: stores}
}

// Create crea una demanda con estado pending y prioridad normal por defecto.
func (uc *ReplenishmentUseCase) Create(userID string, in dto.CreateReplenishmentRequest) (*dto.ReplenishmentResponse, error) {
	if in.ProductID == "" || in.StoreID == "" || userID == "" || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	priority := entity.RequestPriority(in.Priority)
	if in.Priority == "" {
		priority = entity.PriorityNormal
	}
	if !priority.Valid() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s no existe", domain.ErrInvalidInput, in.ProductID)
	}
	store, err := uc.stores.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: almacén %s no existe", domain.ErrInvalidInput, in.StoreID)
	}

	request := &entity.ReplenishmentRequest{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		Priority:  priority,
		Status:    entity.StatusPending,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(request); err != nil {
		return nil, err
	}
	return toReplenishmentResponse(request), nil
}

// GetByID obtiene una demanda por ID.
func (uc *ReplenishmentUseCase) GetByID(id string) (*dto.ReplenishmentResponse, error) {
	request, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	return toReplenishmentResponse(request), nil
}

// Update modifica cantidad y prioridad. El estado solo cambia vía UpdateStatus.
func (uc *ReplenishmentUseCase) Update(id string, in dto.UpdateReplenishmentRequest) (*dto.ReplenishmentResponse, error) {
	request, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		request.Quantity = *in.Quantity
	}
	if in.Priority != nil {
		priority := entity.RequestPriority(*in.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidInput
		}
		request.Priority = priority
	}
	if err := uc.repo.Update(request); err != nil {
		return nil, err
	}
	return toReplenishmentResponse(request), nil
}

// UpdateStatus aplica una transición de estado contra la tabla permitida.
// Rechaza con ErrInvalidTransition cualquier salto fuera del grafo
// pending→{approved,rejected}, approved→in_progress, in_progress→done.
func (uc *ReplenishmentUseCase) UpdateStatus(id string, status string) (*dto.ReplenishmentResponse, error) {
	target := entity.RequestStatus(status)
	if !target.Valid() {
		return nil, domain.ErrInvalidInput
	}
	request, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(request.Status, target) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, request.Status, target)
	}
	request.Status = target
	if err := uc.repo.Update(request); err != nil {
		return nil, err
	}
	return toReplenishmentResponse(request), nil
}

// List lista demandas ordenadas por prioridad (urgent > high > normal > low) y,
// a igual prioridad, por creación descendente. El orden lo garantiza el repositorio.
func (uc *ReplenishmentUseCase) List(limit, offset int) (*dto.ReplenishmentListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReplenishmentResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReplenishmentResponse(r))
	}
	return &dto.ReplenishmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una demanda.
func (uc *ReplenishmentUseCase) Delete(id string) error {
	request, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if request == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toReplenishmentResponse(r *entity.ReplenishmentRequest) *dto.ReplenishmentResponse {
	if r == nil {
		return nil
	}
	return &dto.ReplenishmentResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		StoreID:   r.StoreID,
		Quantity:  r.Quantity,
		Priority:  string(r.Priority),
		Status:    string(r.Status),
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}
