// Package kafka publica eventos de inventario (movimientos confirmados, alertas
// de stock bajo el umbral crítico) en un topic de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tu-usuario/almacen-api/internal/application/inventory"
)

var _ inventory.EventPublisher = (*Producer)(nil)

// Producer escritor de eventos sobre un topic de Kafka.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer construye el productor. Key = partición (producto|almacén) para
// que los eventos de una misma partición de stock conserven el orden.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

// Publish serializa el evento como JSON y lo escribe en el topic.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

// Close cierra el writer y descarga los batches pendientes.
func (p *Producer) Close() error {
	return p.writer.Close()
}
