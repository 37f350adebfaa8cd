package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
// CreatedAt es opcional (lo puede aportar el cliente, como en el sistema original);
// el orden de admisión lo decide el commit, no este timestamp.
type RegisterMovementRequest struct {
	Kind        string     `json:"kind" validate:"required,oneof=in out transfer"`
	ProductID   string     `json:"product_id" validate:"required,uuid"`
	StoreID     string     `json:"store_id" validate:"required,uuid"`
	Quantity    int64      `json:"quantity" validate:"required,min=1"`
	ReferenceID *string    `json:"reference_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// UpdateMovementRequest body parcial para PUT /api/movements/:id.
// Cualquier cambio en kind/quantity/product/store dispara la re-validación de stock.
type UpdateMovementRequest struct {
	Kind        *string `json:"kind" validate:"omitempty,oneof=in out transfer"`
	ProductID   *string `json:"product_id" validate:"omitempty,uuid"`
	StoreID     *string `json:"store_id" validate:"omitempty,uuid"`
	Quantity    *int64  `json:"quantity" validate:"omitempty,min=1"`
	ReferenceID *string `json:"reference_id,omitempty"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	ProductID   string    `json:"product_id"`
	StoreID     string    `json:"store_id"`
	Quantity    int64     `json:"quantity"`
	UserID      string    `json:"user_id"`
	ReferenceID *string   `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// InsufficientStockDetails cifras del rechazo por stock insuficiente.
type InsufficientStockDetails struct {
	Available int64 `json:"available"`
	Requested int64 `json:"requested"`
}
