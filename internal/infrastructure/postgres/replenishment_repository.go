package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

// ReplenishmentRepo persistencia de demandas de reposición sobre PostgreSQL.
type ReplenishmentRepo struct {
	q Querier
}

// NewReplenishmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReplenishmentRepository(q Querier) *ReplenishmentRepo {
	return &ReplenishmentRepo{q: q}
}

const replenishmentColumns = `id, product_id, store_id, quantity, priority, status, user_id, created_at`

// Create registra una demanda de reposición.
func (r *ReplenishmentRepo) Create(request *entity.ReplenishmentRequest) error {
	query := `
		INSERT INTO replenishment_requests (id, product_id, store_id, quantity, priority, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.ProductID, request.StoreID, request.Quantity,
		string(request.Priority), string(request.Status), request.UserID, request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert replenishment request: %w", err)
	}
	return nil
}

// GetByID obtiene una demanda por ID.
func (r *ReplenishmentRepo) GetByID(id string) (*entity.ReplenishmentRequest, error) {
	query := `SELECT ` + replenishmentColumns + ` FROM replenishment_requests WHERE id = $1`
	req, err := scanReplenishment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment request: %w", err)
	}
	return req, nil
}

// Update persiste los cambios de una demanda (cantidad, prioridad o estado).
func (r *ReplenishmentRepo) Update(request *entity.ReplenishmentRequest) error {
	query := `
		UPDATE replenishment_requests SET quantity = $2, priority = $3, status = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.Quantity, string(request.Priority), string(request.Status),
	)
	if err != nil {
		return fmt.Errorf("update replenishment request: %w", err)
	}
	return nil
}

// List lista demandas ordenadas por prioridad (urgent > high > normal > low) y,
// a igual prioridad, por fecha de creación descendente.
func (r *ReplenishmentRepo) List(limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	query := `
		SELECT ` + replenishmentColumns + `
		FROM replenishment_requests
		ORDER BY CASE priority
			WHEN 'urgent' THEN 0
			WHEN 'high'   THEN 1
			WHEN 'normal' THEN 2
			ELSE 3
		END, created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list replenishment requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReplenishmentRequest
	for rows.Next() {
		req, err := scanReplenishment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan replenishment request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Delete elimina una demanda.
func (r *ReplenishmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM replenishment_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete replenishment request: %w", err)
	}
	return nil
}

// CountByProduct cuenta demandas que referencian al producto (guardia de borrado).
func (r *ReplenishmentRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM replenishment_requests WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count replenishment requests by product: %w", err)
	}
	return count, nil
}

// CountByStore cuenta demandas que referencian al almacén (guardia de borrado).
func (r *ReplenishmentRepo) CountByStore(storeID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM replenishment_requests WHERE store_id = $1`, storeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count replenishment requests by store: %w", err)
	}
	return count, nil
}

func scanReplenishment(row pgx.Row) (*entity.ReplenishmentRequest, error) {
	var req entity.ReplenishmentRequest
	var priority, status string
	if err := row.Scan(&req.ID, &req.ProductID, &req.StoreID, &req.Quantity,
		&priority, &status, &req.UserID, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.Priority = entity.RequestPriority(priority)
	req.Status = entity.RequestStatus(status)
	return &req, nil
}
