package domain

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"time"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusPacked     Status = "Packed"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification is an event record attached to an order. Append-only except
// for the Read flag. OrderID is populated only on flattened reads.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	Timestamp int64            `json:"timestamp"`
	OrderID   string           `json:"orderId,omitempty"`
}

// Item is a single order line. The engine treats it as an opaque payload.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Order is one checkout transaction tracked through the simulated
// fulfillment lifecycle. Timestamps are epoch milliseconds, matching the
// persisted blob format.
type Order struct {
	ID            string          `json:"id"`
	Items         []Item          `json:"items"`
	Total         float64         `json:"total"`
	Timestamp     int64           `json:"timestamp"`
	LastUpdated   int64           `json:"lastUpdated"`
	Status        Status          `json:"status"`
	IsCancelled   bool            `json:"isCancelled"`
	Shipping      json.RawMessage `json:"shipping,omitempty"`
	Payment       json.RawMessage `json:"payment,omitempty"`
	Notifications []Notification  `json:"notifications"`
}

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID generates an id of the form "#" plus six base-36 characters.
// Collisions are not mitigated.
func NewOrderID() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = orderIDAlphabet[rand.Intn(len(orderIDAlphabet))]
	}
	return "#" + string(b)
}

// NewNotification builds an unread notification stamped at now.
func NewNotification(message string, typ NotificationType, now time.Time) Notification {
	ms := now.UnixMilli()
	return Notification{
		ID:        strconv.FormatInt(ms, 10),
		Message:   message,
		Type:      typ,
		Timestamp: ms,
	}
}
