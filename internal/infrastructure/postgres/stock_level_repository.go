package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo fila materializada de stock por (producto, almacén) sobre
// PostgreSQL. Es el ancla de SELECT FOR UPDATE que serializa entre procesos la
// secuencia leer-validar-escribir del ledger.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene la fila de stock; devuelve una fila en cero si no existe aún.
func (r *StockLevelRepo) Get(productID, storeID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, store_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND store_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(
		&l.ProductID, &l.StoreID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza la fila materializada (recalculada desde el fold).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, level.ProductID, level.StoreID, level.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE). Si la partición
// no tiene fila todavía, la crea en cero y la bloquea, para que dos escrituras
// concurrentes sobre una partición nueva también queden serializadas.
func (r *StockLevelRepo) GetForUpdate(productID, storeID string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO stock_levels (product_id, store_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, store_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, storeID); err != nil {
		return nil, fmt.Errorf("seed stock level: %w", err)
	}
	query := `
		SELECT product_id, store_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(
		&l.ProductID, &l.StoreID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}
