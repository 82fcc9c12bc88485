package domain

type EventType string

const (
	EventOrderCreated       EventType = "order_created"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventOrderCancelled     EventType = "order_cancelled"
)

// OrderEvent is the lifecycle event published to the message bus.
type OrderEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	OrderID   string    `json:"order_id"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp int64     `json:"timestamp"`
}
