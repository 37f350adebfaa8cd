package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string     `json:"name" validate:"required,min=1,max=100"`
	Category          string     `json:"category" validate:"required,min=1,max=50"`
	Supplier          string     `json:"supplier" validate:"required,min=1,max=100"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	CriticalThreshold *int64     `json:"critical_threshold,omitempty" validate:"omitempty,min=0"`
}

// UpdateProductRequest entrada parcial para actualizar un producto (el ID es inmutable).
type UpdateProductRequest struct {
	Name              *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Category          *string    `json:"category" validate:"omitempty,min=1,max=50"`
	Supplier          *string    `json:"supplier" validate:"omitempty,min=1,max=100"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	CriticalThreshold *int64     `json:"critical_threshold,omitempty" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Supplier          string     `json:"supplier"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	CriticalThreshold *int64     `json:"critical_threshold,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
