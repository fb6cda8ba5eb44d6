package kafka

import (
	"time"

	"github.com/nurtai/product-catalog/internal/catalog/domain"
)

// ProductEvent represents a product lifecycle event.
type ProductEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Product   domain.Product `json:"product"`
	Timestamp time.Time      `json:"timestamp"`
}

// Event types
const (
	EventTypeProductCreated = "product.created"
	EventTypeProductUpdated = "product.updated"
	EventTypeProductDeleted = "product.deleted"
)

// Kafka topics
const (
	TopicProductEvents = "product-events"
)
