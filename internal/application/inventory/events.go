package inventory

import (
	"context"
	"time"
)

// Tipos de evento publicados tras cada escritura aceptada del ledger.
const (
	EventMovementCommitted   = "movement.committed"
	EventStockBelowThreshold = "stock.below_threshold"
)

// MovementCommittedEvent escritura comprometida en el ledger con el stock resultante.
type MovementCommittedEvent struct {
	Type       string    `json:"type"`
	MovementID string    `json:"movement_id"`
	Kind       string    `json:"kind"`
	ProductID  string    `json:"product_id"`
	StoreID    string    `json:"store_id"`
	Quantity   int64     `json:"quantity"`
	StockAfter int64     `json:"stock_after"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StockBelowThresholdEvent el stock de la partición cayó bajo el umbral crítico del producto.
type StockBelowThresholdEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id"`
	StoreID    string    `json:"store_id"`
	Quantity   int64     `json:"quantity"`
	Threshold  int64     `json:"threshold"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher puerto de publicación de eventos de inventario (mejor esfuerzo:
// un fallo de publicación no revierte la escritura del ledger).
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// NopPublisher descarta los eventos; usado cuando no hay broker configurado y en tests.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }
