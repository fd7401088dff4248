package models

import "time"

// Product lifecycle event types.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent is published after a product has been written or removed.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint      `json:"product_id"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProductEvent builds an event of the given type from a product snapshot.
func NewProductEvent(eventType string, p Product) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  p.ID,
		Title:      p.Title,
		Image:      p.Image,
		OccurredAt: time.Now().UTC(),
	}
}
