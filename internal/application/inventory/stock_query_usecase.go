package inventory

import (
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// StockQueryUseCase responde consultas de stock derivado. Calcula en lectura:
// el fold del ledger es la fuente de verdad, no la fila materializada.
type StockQueryUseCase struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
}

// NewStockQueryUseCase construye el caso de uso de consulta.
func NewStockQueryUseCase(movements repository.MovementRepository, products repository.ProductRepository) *StockQueryUseCase {
	return &StockQueryUseCase{movements: movements, products: products}
}

// ListStock devuelve los niveles por (producto, almacén), con filtros opcionales,
// marcando las particiones bajo el umbral crítico del producto.
func (uc *StockQueryUseCase) ListStock(productID, storeID string) (*dto.StockListResponse, error) {
	levels, err := uc.movements.SummarizeStock(productID, storeID)
	if err != nil {
		return nil, err
	}

	thresholds := make(map[string]*int64)
	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, level := range levels {
		threshold, ok := thresholds[level.ProductID]
		if !ok {
			product, err := uc.products.GetByID(level.ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				threshold = product.CriticalThreshold
			}
			thresholds[level.ProductID] = threshold
		}
		items = append(items, dto.StockLevelResponse{
			ProductID:      level.ProductID,
			StoreID:        level.StoreID,
			Quantity:       level.Quantity,
			BelowThreshold: threshold != nil && level.Quantity < *threshold,
		})
	}
	return &dto.StockListResponse{Total: len(items), Items: items}, nil
}
