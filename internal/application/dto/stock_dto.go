package dto

// StockLevelResponse nivel de stock derivado para una partición (producto, almacén).
// BelowThreshold marca las particiones bajo el umbral crítico del producto.
type StockLevelResponse struct {
	ProductID      string `json:"product_id"`
	StoreID        string `json:"store_id"`
	Quantity       int64  `json:"quantity"`
	BelowThreshold bool   `json:"below_threshold,omitempty"`
}

// StockListResponse listado de niveles de stock calculados en lectura.
type StockListResponse struct {
	Total int                  `json:"total"`
	Items []StockLevelResponse `json:"items"`
}
