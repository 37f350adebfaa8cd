package memory

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback directamente sobre los repos compartidos, sin
// transacción real. La atomicidad observable en los tests la aporta el
// keyed-lock del use case, que serializa las escrituras por partición.
type TxRunner struct {
	Movements   repository.MovementRepository
	StockLevels repository.StockLevelRepository
	Transfers   repository.TransferRepository
}

func NewTxRunner(movements repository.MovementRepository, stockLevels repository.StockLevelRepository, transfers repository.TransferRepository) *TxRunner {
	return &TxRunner{Movements: movements, StockLevels: stockLevels, Transfers: transfers}
}

func (r *TxRunner) Run(ctx context.Context, fn func(movements repository.MovementRepository, stockLevels repository.StockLevelRepository, transfers repository.TransferRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.Movements, r.StockLevels, r.Transfers)
}
