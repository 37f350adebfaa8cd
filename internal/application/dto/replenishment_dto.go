package dto

import "time"

// CreateReplenishmentRequest body para POST /api/replenishments.
type CreateReplenishmentRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	StoreID   string `json:"store_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Priority  string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

// UpdateReplenishmentRequest body parcial para PUT (cantidad y prioridad; el
// estado solo cambia por PATCH /:id/status).
type UpdateReplenishmentRequest struct {
	Quantity *int64  `json:"quantity" validate:"omitempty,min=1"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

// UpdateStatusRequest body para PATCH /api/replenishments/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected in_progress done"`
}

// ReplenishmentResponse salida de una demanda de reposición.
type ReplenishmentResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	Quantity  int64     `json:"quantity"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ReplenishmentListResponse lista paginada de demandas.
type ReplenishmentListResponse struct {
	Items []ReplenishmentResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
