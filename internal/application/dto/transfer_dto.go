package dto

import "time"

// CreateTransferRequest body para POST /api/transfers: las dos patas ya creadas
// vía el validador de movimientos.
type CreateTransferRequest struct {
	OutMovementID string     `json:"out_movement_id" validate:"required,uuid"`
	InMovementID  string     `json:"in_movement_id" validate:"required,uuid"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// TransferResponse salida de un transfer.
type TransferResponse struct {
	ID            string    `json:"id"`
	OutMovementID string    `json:"out_movement_id"`
	InMovementID  string    `json:"in_movement_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransferListResponse lista paginada de transfers.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MismatchedLegsDetails pares (producto, cantidad) en conflicto de un transfer rechazado.
type MismatchedLegsDetails struct {
	OutProductID string `json:"out_product_id"`
	OutQuantity  int64  `json:"out_quantity"`
	InProductID  string `json:"in_product_id"`
	InQuantity   int64  `json:"in_quantity"`
}
