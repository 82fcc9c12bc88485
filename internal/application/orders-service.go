package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/logger"
	"github.com/ashirarif0999-sketch/blueember/internal/notify"
	"github.com/ashirarif0999-sketch/blueember/internal/repository"
)

// EventPublisher pushes order lifecycle events to the message bus.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev domain.OrderEvent) error
}

// CancelOutcome tags why a cancellation did or did not happen.
type CancelOutcome int

const (
	CancelOK CancelOutcome = iota
	CancelNotFound
	CancelWrongStatus
	CancelTooLate
)

func (c CancelOutcome) String() string {
	switch c {
	case CancelOK:
		return "ok"
	case CancelNotFound:
		return "not found"
	case CancelWrongStatus:
		return "wrong status"
	case CancelTooLate:
		return "too late"
	}
	return "unknown"
}

// OrderMeta carries optional caller-supplied order metadata. Shipping and
// payment pass through opaquely.
type OrderMeta struct {
	ID       string
	Shipping json.RawMessage
	Payment  json.RawMessage
}

// OrderEngine is the order lifecycle and notification engine. It reads
// through to storage on every call and guards its read-modify-write cycles
// with a mutex, so the sweep worker, HTTP handlers and the bus consumer
// serialize within one process. Writers in other processes remain
// last-writer-wins.
type OrderEngine struct {
	mu       sync.Mutex
	store    *repository.OrderStore
	notifier notify.Sink
	events   EventPublisher
	nowFunc  func() time.Time
}

// NewOrderEngine wires the engine. events may be nil when no bus is
// configured.
func NewOrderEngine(store *repository.OrderStore, notifier notify.Sink, events EventPublisher) *OrderEngine {
	if notifier == nil {
		notifier = notify.NewFanout()
	}
	return &OrderEngine{
		store:    store,
		notifier: notifier,
		events:   events,
		nowFunc:  time.Now,
	}
}

// CreateOrder records a new order at the front of the list. Items and total
// are not validated; the operation never fails from the caller's point of
// view, storage errors are logged and the order is still returned.
func (e *OrderEngine) CreateOrder(ctx context.Context, items []domain.Item, total float64, meta OrderMeta) domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.nowFunc()
	id := meta.ID
	if id == "" {
		id = domain.NewOrderID()
	}

	n := domain.NewNotification(
		fmt.Sprintf("Your order %s is currently under process.", id),
		domain.NotificationInfo, now)

	order := domain.Order{
		ID:            id,
		Items:         items,
		Total:         total,
		Timestamp:     now.UnixMilli(),
		LastUpdated:   now.UnixMilli(),
		Status:        domain.StatusProcessing,
		Shipping:      meta.Shipping,
		Payment:       meta.Payment,
		Notifications: []domain.Notification{n},
	}

	orders := e.store.Load(ctx)
	orders = append([]domain.Order{order}, orders...)
	if err := e.store.Save(ctx, orders); err != nil {
		logger.Warn("order save failed", "id", id, "err", err)
	}

	e.notifier.Notify(fmt.Sprintf("Order %s Placed Successfully!", id), notify.SeveritySuccess)
	e.setBadge(orders)
	e.publish(ctx, domain.EventOrderCreated, order, "")

	logger.Info("order created", "id", id, "total", total)
	return order
}

// Orders returns every order, newest first.
func (e *OrderEngine) Orders(ctx context.Context) []domain.Order {
	return e.store.Load(ctx)
}

// Order looks an order up by exact id.
func (e *OrderEngine) Order(ctx context.Context, id string) (domain.Order, bool) {
	for _, o := range e.store.Load(ctx) {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// CancelOrder cancels a Processing order inside the cancellation window.
// The outcome tag tells the caller why nothing changed otherwise.
func (e *OrderEngine) CancelOrder(ctx context.Context, id string) CancelOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.nowFunc()
	orders := e.store.Load(ctx)

	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return CancelNotFound
	}

	o := &orders[idx]
	if o.IsCancelled || o.Status != domain.StatusProcessing {
		return CancelWrongStatus
	}
	if domain.HoursSince(o.Timestamp, now) > domain.CancelWindowHours {
		return CancelTooLate
	}

	o.Status = domain.StatusCancelled
	o.IsCancelled = true
	o.LastUpdated = now.UnixMilli()
	o.Notifications = append(o.Notifications, domain.NewNotification(
		fmt.Sprintf("Order %s has been cancelled.", id),
		domain.NotificationError, now))

	if err := e.store.Save(ctx, orders); err != nil {
		logger.Warn("order save failed", "id", id, "err", err)
	}

	e.notifier.Notify(fmt.Sprintf("Order %s Cancelled", id), notify.SeveritySuccess)
	e.setBadge(orders)
	e.publish(ctx, domain.EventOrderCancelled, *o, "")

	logger.Info("order cancelled", "id", id)
	return CancelOK
}

// UpdateOrderStatuses runs one sweep: every non-cancelled, non-delivered
// order is advanced to the stage its elapsed time calls for. One save per
// sweep, one notification per applied transition.
func (e *OrderEngine) UpdateOrderStatuses(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sweep(ctx)
}

// sweep assumes e.mu is held.
func (e *OrderEngine) sweep(ctx context.Context) {
	now := e.nowFunc()
	orders := e.store.Load(ctx)
	changed := false

	for i := range orders {
		next, msg, ok := domain.NextStatus(orders[i], now)
		if !ok {
			continue
		}

		orders[i].Status = next
		orders[i].LastUpdated = now.UnixMilli()
		orders[i].Notifications = append(orders[i].Notifications,
			domain.NewNotification(msg, domain.NotificationSuccess, now))
		changed = true

		e.notifier.Notify(msg, notify.SeverityInfo)
		e.publish(ctx, domain.EventOrderStatusChanged, orders[i], msg)
		logger.Info("order status advanced", "id", orders[i].ID, "status", string(next))
	}

	if changed {
		if err := e.store.Save(ctx, orders); err != nil {
			logger.Warn("sweep save failed", "err", err)
		}
		e.setBadge(orders)
	}
}

// AllNotifications flattens every order's ledger, tags entries with the
// owning order id and sorts newest first.
func (e *OrderEngine) AllNotifications(ctx context.Context) []domain.Notification {
	var all []domain.Notification
	for _, o := range e.store.Load(ctx) {
		for _, n := range o.Notifications {
			n.OrderID = o.ID
			all = append(all, n)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp > all[j].Timestamp
	})
	return all
}

// UnreadCount counts unread notifications across all orders.
func (e *OrderEngine) UnreadCount(ctx context.Context) int {
	count := 0
	for _, o := range e.store.Load(ctx) {
		for _, n := range o.Notifications {
			if !n.Read {
				count++
			}
		}
	}
	return count
}

// MarkAllAsRead flips every notification to read; persists only when
// something actually changed.
func (e *OrderEngine) MarkAllAsRead(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	orders := e.store.Load(ctx)
	changed := false
	for i := range orders {
		for j := range orders[i].Notifications {
			if !orders[i].Notifications[j].Read {
				orders[i].Notifications[j].Read = true
				changed = true
			}
		}
	}

	if changed {
		if err := e.store.Save(ctx, orders); err != nil {
			logger.Warn("mark-all-read save failed", "err", err)
		}
		e.setBadge(orders)
	}
}

// ImportOrder ingests an externally placed order (bus consumer path).
// Already-known ids are skipped so redelivery stays idempotent.
func (e *OrderEngine) ImportOrder(ctx context.Context, order domain.Order) error {
	if order.ID == "" {
		return fmt.Errorf("import order: empty id")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	orders := e.store.Load(ctx)
	for i := range orders {
		if orders[i].ID == order.ID {
			return nil
		}
	}

	now := e.nowFunc()
	if order.Timestamp == 0 {
		order.Timestamp = now.UnixMilli()
	}
	if order.LastUpdated < order.Timestamp {
		order.LastUpdated = order.Timestamp
	}
	if order.Status == "" {
		order.Status = domain.StatusProcessing
	}
	if len(order.Notifications) == 0 {
		order.Notifications = []domain.Notification{domain.NewNotification(
			fmt.Sprintf("Your order %s is currently under process.", order.ID),
			domain.NotificationInfo, now)}
	}

	orders = append([]domain.Order{order}, orders...)
	if err := e.store.Save(ctx, orders); err != nil {
		return fmt.Errorf("import order %s: %w", order.ID, err)
	}

	e.setBadge(orders)
	logger.Info("order imported", "id", order.ID)
	return nil
}

// FastForward shifts every order's creation time backward by the given
// number of hours and runs a sweep. Dev/testing affordance only.
func (e *OrderEngine) FastForward(ctx context.Context, hours int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	orders := e.store.Load(ctx)
	for i := range orders {
		orders[i].Timestamp -= int64(hours) * 60 * 60 * 1000
	}
	if err := e.store.Save(ctx, orders); err != nil {
		logger.Warn("fast-forward save failed", "err", err)
	}
	logger.Info("fast forwarded", "hours", hours)

	e.sweep(ctx)
}

func (e *OrderEngine) setBadge(orders []domain.Order) {
	count := 0
	for _, o := range orders {
		for _, n := range o.Notifications {
			if !n.Read {
				count++
			}
		}
	}
	e.notifier.SetBadgeCount(count)
}

func (e *OrderEngine) publish(ctx context.Context, typ domain.EventType, o domain.Order, msg string) {
	if e.events == nil {
		return
	}
	ev := domain.OrderEvent{
		Type:      typ,
		OrderID:   o.ID,
		Status:    o.Status,
		Message:   msg,
		Timestamp: e.nowFunc().UnixMilli(),
	}
	if err := e.events.PublishOrderEvent(ctx, ev); err != nil {
		logger.Warn("event publish failed", "type", string(typ), "order", o.ID, "err", err)
	}
}
