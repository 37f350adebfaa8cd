package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// LedgerUseCase valida y registra movimientos de stock de forma transaccional.
// Hace cumplir el invariante de no-negatividad: ninguna escritura comprometida
// puede dejar el stock derivado de una partición (producto, almacén) por debajo
// de cero. La secuencia leer-validar-escribir se serializa por partición con un
// mutex por clave y, entre procesos, con el bloqueo de fila de la BD
// (SELECT FOR UPDATE sobre stock_levels).
type LedgerUseCase struct {
	txRunner  TxRunner
	movements repository.MovementRepository
	products  repository.ProductRepository
	stores    repository.StoreRepository
	users     repository.UserRepository
	transfers repository.TransferRepository
	publisher EventPublisher
	locks     *partitionLocks
}

// NewLedgerUseCase construye el caso de uso. Los repositorios van atados al pool;
// dentro de Run el TxRunner entrega sus equivalentes atados a la transacción.
func NewLedgerUseCase(
	txRunner TxRunner,
	movements repository.MovementRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	users repository.UserRepository,
	transfers repository.TransferRepository,
	publisher EventPublisher,
) *LedgerUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		movements: movements,
		products:  products,
		stores:    stores,
		users:     users,
		transfers: transfers,
		publisher: publisher,
		locks:     newPartitionLocks(),
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	Kind        entity.MovementKind
	ProductID   string
	StoreID     string
	Quantity    int64
	UserID      string
	ReferenceID *string
	CreatedAt   *time.Time
}

// MovementUpdate cambios parciales sobre un movimiento existente.
type MovementUpdate struct {
	Kind        *entity.MovementKind
	ProductID   *string
	StoreID     *string
	Quantity    *int64
	ReferenceID *string
}

// RegisterMovement valida la entrada, comprueba el stock para salidas y añade el
// movimiento al ledger. Las entradas (in/transfer) nunca se rechazan por stock.
// Orden de validación: entrada malformada y referencias inexistentes rechazan con
// ErrInvalidInput antes de cualquier cálculo de stock.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if !input.Kind.Valid() || input.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.StoreID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkReferences(input.ProductID, input.StoreID, input.UserID); err != nil {
		return nil, err
	}

	now := time.Now()
	createdAt := now
	if input.CreatedAt != nil {
		createdAt = *input.CreatedAt
	}
	movement := &entity.Movement{
		ID:          uuid.New().String(),
		Kind:        input.Kind,
		ProductID:   input.ProductID,
		StoreID:     input.StoreID,
		Quantity:    input.Quantity,
		UserID:      input.UserID,
		ReferenceID: input.ReferenceID,
		CreatedAt:   createdAt,
	}

	var stockAfter int64
	unlock := uc.locks.Lock(partitionKey(input.ProductID, input.StoreID))
	defer unlock()

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
		_ repository.TransferRepository,
	) error {
		// Ancla de serialización entre procesos: bloquea la fila materializada.
		if _, err := stockRepo.GetForUpdate(input.ProductID, input.StoreID); err != nil {
			return err
		}
		projector := NewStockProjector(movRepo)
		available, err := projector.CurrentStock(input.ProductID, input.StoreID)
		if err != nil {
			return err
		}
		if input.Kind == entity.MovementOut && input.Quantity > available {
			return &domain.InsufficientStockError{Available: available, Requested: input.Quantity}
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		stockAfter = available + movement.Delta()
		return stockRepo.Upsert(&entity.StockLevel{
			ProductID: input.ProductID,
			StoreID:   input.StoreID,
			Quantity:  stockAfter,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.publishCommitted(ctx, movement, stockAfter)
	return movement, nil
}

// UpdateMovement aplica cambios a un movimiento y re-valida el invariante de stock.
// Si cambia kind, quantity, product o store, recalcula el stock de la partición
// destino excluyendo el movimiento editado y aplica el delta con los valores nuevos;
// rechaza cuando el resultado sería negativo. Aplica también cuando solo cambia la
// referencia de producto o almacén (el efecto del movimiento cambia de partición).
// Los movimientos emparejados en un transfer rechazan cualquier cambio que afecte
// al stock, igual que el borrado.
func (uc *LedgerUseCase) UpdateMovement(ctx context.Context, id string, changes MovementUpdate) (*entity.Movement, error) {
	current, err := uc.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	if changes.Kind != nil && !changes.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if changes.Quantity != nil && *changes.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if changes.ProductID != nil && *changes.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if changes.StoreID != nil && *changes.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}

	updated := *current
	if changes.Kind != nil {
		updated.Kind = *changes.Kind
	}
	if changes.Quantity != nil {
		updated.Quantity = *changes.Quantity
	}
	if changes.ProductID != nil {
		updated.ProductID = *changes.ProductID
	}
	if changes.StoreID != nil {
		updated.StoreID = *changes.StoreID
	}
	if changes.ReferenceID != nil {
		updated.ReferenceID = changes.ReferenceID
	}

	if updated.ProductID != current.ProductID {
		if err := uc.checkProduct(updated.ProductID); err != nil {
			return nil, err
		}
	}
	if updated.StoreID != current.StoreID {
		if err := uc.checkStore(updated.StoreID); err != nil {
			return nil, err
		}
	}

	affectsStock := updated.Kind != current.Kind ||
		updated.Quantity != current.Quantity ||
		updated.ProductID != current.ProductID ||
		updated.StoreID != current.StoreID

	// Una pata emparejada no puede cambiar de kind, cantidad, producto ni
	// almacén: rompería la equivalencia de patas del transfer. Solo se admiten
	// cambios que no afectan al stock (p. ej. la referencia).
	if affectsStock {
		linked, err := uc.transfers.GetByMovement(current.ID)
		if err != nil {
			return nil, err
		}
		if linked != nil {
			return nil, fmt.Errorf("%w: el movimiento pertenece al transfer %s", domain.ErrReferentialIntegrity, linked.ID)
		}
	}

	oldKey := partitionKey(current.ProductID, current.StoreID)
	newKey := partitionKey(updated.ProductID, updated.StoreID)
	unlock := uc.locks.LockPair(oldKey, newKey)
	defer unlock()

	now := time.Now()
	var stockAfter int64
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
		_ repository.TransferRepository,
	) error {
		if err := lockPartitionRows(stockRepo, current, &updated); err != nil {
			return err
		}
		projector := NewStockProjector(movRepo)
		if affectsStock {
			excluding, err := projector.CurrentStockExcluding(updated.ProductID, updated.StoreID, current.ID)
			if err != nil {
				return err
			}
			if excluding+updated.Delta() < 0 {
				return &domain.InsufficientStockError{Available: excluding, Requested: updated.Quantity}
			}
		}
		if err := movRepo.Update(&updated); err != nil {
			return err
		}
		var err error
		stockAfter, err = refreshPartition(projector, stockRepo, updated.ProductID, updated.StoreID, now)
		if err != nil {
			return err
		}
		if oldKey != newKey {
			if _, err := refreshPartition(projector, stockRepo, current.ProductID, current.StoreID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishCommitted(ctx, &updated, stockAfter)
	return &updated, nil
}

// DeleteMovement elimina un movimiento del ledger. Endurecido respecto al diseño
// observado: rechaza si el movimiento pertenece a un transfer y si su retirada
// dejaría negativo el stock derivado de la partición.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, id string) error {
	current, err := uc.movements.GetByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	linked, err := uc.transfers.GetByMovement(id)
	if err != nil {
		return err
	}
	if linked != nil {
		return fmt.Errorf("%w: el movimiento pertenece al transfer %s", domain.ErrReferentialIntegrity, linked.ID)
	}

	unlock := uc.locks.Lock(partitionKey(current.ProductID, current.StoreID))
	defer unlock()

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
		_ repository.TransferRepository,
	) error {
		if _, err := stockRepo.GetForUpdate(current.ProductID, current.StoreID); err != nil {
			return err
		}
		projector := NewStockProjector(movRepo)
		remaining, err := projector.CurrentStockExcluding(current.ProductID, current.StoreID, current.ID)
		if err != nil {
			return err
		}
		if remaining < 0 {
			return &domain.InsufficientStockError{Available: remaining, Requested: current.Quantity}
		}
		if err := movRepo.Delete(current.ID); err != nil {
			return err
		}
		return stockRepo.Upsert(&entity.StockLevel{
			ProductID: current.ProductID,
			StoreID:   current.StoreID,
			Quantity:  remaining,
			UpdatedAt: now,
		})
	})
}

// GetMovement obtiene un movimiento por ID.
func (uc *LedgerUseCase) GetMovement(id string) (*entity.Movement, error) {
	movement, err := uc.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// ListMovements lista movimientos con paginación.
func (uc *LedgerUseCase) ListMovements(limit, offset int) ([]*entity.Movement, error) {
	return uc.movements.List(limit, offset)
}

// checkReferences valida que producto, almacén y usuario existan. Una referencia
// inexistente es entrada inválida: se captura en el borde, antes de tocar el ledger.
func (uc *LedgerUseCase) checkReferences(productID, storeID, userID string) error {
	if err := uc.checkProduct(productID); err != nil {
		return err
	}
	if err := uc.checkStore(storeID); err != nil {
		return err
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuario %s no existe", domain.ErrInvalidInput, userID)
	}
	return nil
}

func (uc *LedgerUseCase) checkProduct(productID string) error {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s no existe", domain.ErrInvalidInput, productID)
	}
	return nil
}

func (uc *LedgerUseCase) checkStore(storeID string) error {
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: almacén %s no existe", domain.ErrInvalidInput, storeID)
	}
	return nil
}

// lockPartitionRows bloquea las filas materializadas de las particiones afectadas
// en orden lexicográfico, el mismo que usa el mutex por clave.
func lockPartitionRows(stockRepo repository.StockLevelRepository, current, updated *entity.Movement) error {
	oldKey := partitionKey(current.ProductID, current.StoreID)
	newKey := partitionKey(updated.ProductID, updated.StoreID)
	if oldKey == newKey || oldKey < newKey {
		if _, err := stockRepo.GetForUpdate(current.ProductID, current.StoreID); err != nil {
			return err
		}
		if oldKey == newKey {
			return nil
		}
		_, err := stockRepo.GetForUpdate(updated.ProductID, updated.StoreID)
		return err
	}
	if _, err := stockRepo.GetForUpdate(updated.ProductID, updated.StoreID); err != nil {
		return err
	}
	_, err := stockRepo.GetForUpdate(current.ProductID, current.StoreID)
	return err
}

// refreshPartition recalcula desde el fold la fila materializada de la partición.
func refreshPartition(projector *StockProjector, stockRepo repository.StockLevelRepository, productID, storeID string, now time.Time) (int64, error) {
	quantity, err := projector.CurrentStock(productID, storeID)
	if err != nil {
		return 0, err
	}
	return quantity, stockRepo.Upsert(&entity.StockLevel{
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  quantity,
		UpdatedAt: now,
	})
}

// publishCommitted emite los eventos de inventario tras una escritura aceptada.
// Mejor esfuerzo: un fallo de publicación se registra y no revierte el ledger.
func (uc *LedgerUseCase) publishCommitted(ctx context.Context, movement *entity.Movement, stockAfter int64) {
	now := time.Now()
	event := MovementCommittedEvent{
		Type:       EventMovementCommitted,
		MovementID: movement.ID,
		Kind:       string(movement.Kind),
		ProductID:  movement.ProductID,
		StoreID:    movement.StoreID,
		Quantity:   movement.Quantity,
		StockAfter: stockAfter,
		OccurredAt: now,
	}
	key := partitionKey(movement.ProductID, movement.StoreID)
	if err := uc.publisher.Publish(ctx, key, event); err != nil {
		log.Warn().Err(err).Str("movement_id", movement.ID).Msg("no se pudo publicar movement.committed")
	}

	product, err := uc.products.GetByID(movement.ProductID)
	if err != nil || product == nil || product.CriticalThreshold == nil {
		return
	}
	if stockAfter >= *product.CriticalThreshold {
		return
	}
	alert := StockBelowThresholdEvent{
		Type:       EventStockBelowThreshold,
		ProductID:  movement.ProductID,
		StoreID:    movement.StoreID,
		Quantity:   stockAfter,
		Threshold:  *product.CriticalThreshold,
		OccurredAt: now,
	}
	if err := uc.publisher.Publish(ctx, key, alert); err != nil {
		log.Warn().Err(err).Str("product_id", movement.ProductID).Msg("no se pudo publicar stock.below_threshold")
	}
}
