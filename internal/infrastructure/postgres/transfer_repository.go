package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo persistencia de transfers sobre PostgreSQL. Los índices únicos
// sobre out_movement_id e in_movement_id garantizan la relación uno a uno
// movimiento↔transfer a nivel de base de datos.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create registra el enlace entre las dos patas de un transfer.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, out_movement_id, in_movement_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.OutMovementID, transfer.InMovementID, transfer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el movimiento ya pertenece a otro transfer", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: movimiento inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un transfer por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT id, out_movement_id, in_movement_id, created_at FROM transfers WHERE id = $1`
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// GetByMovement devuelve el transfer que referencia al movimiento por cualquiera
// de sus patas, o nil si el movimiento está libre.
func (r *TransferRepo) GetByMovement(movementID string) (*entity.Transfer, error) {
	query := `
		SELECT id, out_movement_id, in_movement_id, created_at
		FROM transfers WHERE out_movement_id = $1 OR in_movement_id = $1`
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer by movement: %w", err)
	}
	return t, nil
}

// Update re-apunta las patas de un transfer existente.
func (r *TransferRepo) Update(transfer *entity.Transfer) error {
	query := `UPDATE transfers SET out_movement_id = $2, in_movement_id = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.OutMovementID, transfer.InMovementID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el movimiento ya pertenece a otro transfer", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: movimiento inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// List lista transfers con paginación, más recientes primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, out_movement_id, in_movement_id, created_at
		FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete elimina un transfer. Los movimientos de las patas quedan libres.
func (r *TransferRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	if err := row.Scan(&t.ID, &t.OutMovementID, &t.InMovementID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
