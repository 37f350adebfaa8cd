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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, kind, product_id, store_id, quantity, user_id, reference_id, created_at`

// Create añade un movimiento al ledger.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, kind, product_id, store_id, quantity, user_id, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, string(movement.Kind), movement.ProductID, movement.StoreID,
		movement.Quantity, movement.UserID, movement.ReferenceID, movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto, almacén o usuario inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update persiste los cambios de un movimiento (update correctivo ya validado).
func (r *MovementRepo) Update(movement *entity.Movement) error {
	query := `
		UPDATE movements SET kind = $2, product_id = $3, store_id = $4, quantity = $5, user_id = $6, reference_id = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, string(movement.Kind), movement.ProductID, movement.StoreID,
		movement.Quantity, movement.UserID, movement.ReferenceID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto, almacén o usuario inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update movement: %w", err)
	}
	return nil
}

// Delete elimina un movimiento (borrado administrativo, ya validado por el use case).
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el movimiento pertenece a un transfer", domain.ErrReferentialIntegrity)
		}
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// List lista movimientos con paginación, más recientes primero.
func (r *MovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByPartition devuelve todos los movimientos de la partición (producto, almacén),
// insumo del fold de stock.
func (r *MovementRepo) ListByPartition(productID, storeID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 AND store_id = $2`
	rows, err := r.q.Query(context.Background(), query, productID, storeID)
	if err != nil {
		return nil, fmt.Errorf("list movements by partition: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// SummarizeStock pliega el ledger por (producto, almacén) en la base de datos:
// in/transfer suman, out resta. Filtros vacíos = sin filtro.
func (r *MovementRepo) SummarizeStock(productID, storeID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, store_id,
		       SUM(CASE WHEN kind = 'out' THEN -quantity ELSE quantity END) AS quantity,
		       MAX(created_at) AS updated_at
		FROM movements
		WHERE ($1 = '' OR product_id = $1) AND ($2 = '' OR store_id = $2)
		GROUP BY product_id, store_id
		ORDER BY product_id, store_id`
	rows, err := r.q.Query(context.Background(), query, productID, storeID)
	if err != nil {
		return nil, fmt.Errorf("summarize stock: %w", err)
	}
	defer rows.Close()
	var levels []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ProductID, &l.StoreID, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		levels = append(levels, &l)
	}
	return levels, rows.Err()
}

// CountByProduct cuenta movimientos que referencian al producto (guardia de borrado).
func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return count, nil
}

// CountByStore cuenta movimientos que referencian al almacén (guardia de borrado).
func (r *MovementRepo) CountByStore(storeID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE store_id = $1`, storeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements by store: %w", err)
	}
	return count, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var kind string
	if err := row.Scan(&m.ID, &kind, &m.ProductID, &m.StoreID, &m.Quantity, &m.UserID, &m.ReferenceID, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
