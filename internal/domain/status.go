package domain

import (
	"fmt"
	"time"
)

// Lifecycle thresholds in hours since order creation.
const (
	PackedAfterHours    = 24
	ShippedAfterHours   = 48
	DeliveredAfterHours = 72

	// CancelWindowHours is how long after creation a Processing order may
	// still be cancelled.
	CancelWindowHours = 24
)

const millisPerHour = 60 * 60 * 1000

// HoursSince returns fractional hours elapsed between an epoch-ms timestamp
// and now.
func HoursSince(timestampMillis int64, now time.Time) float64 {
	return float64(now.UnixMilli()-timestampMillis) / millisPerHour
}

// NextStatus derives the stage an order should be at for the time elapsed
// since creation. It returns the target status, the notification message for
// the transition, and whether a transition applies. Status is derived state:
// a sweep that runs long after creation jumps straight to the correct stage
// and reports only that one transition.
func NextStatus(o Order, now time.Time) (Status, string, bool) {
	if o.IsCancelled || o.Status == StatusDelivered {
		return o.Status, "", false
	}

	hours := HoursSince(o.Timestamp, now)
	next := o.Status
	msg := ""

	switch {
	case hours >= DeliveredAfterHours:
		next = StatusDelivered
		msg = fmt.Sprintf("Your order %s is delivered successfully.", o.ID)
	case hours >= ShippedAfterHours && o.Status != StatusShipped:
		next = StatusShipped
		msg = fmt.Sprintf("Your order %s has arrived in your country.", o.ID)
	case hours >= PackedAfterHours && hours < ShippedAfterHours && o.Status != StatusPacked:
		next = StatusPacked
		msg = fmt.Sprintf("Your order %s is packed and ready to ship.", o.ID)
	}

	if next == o.Status {
		return o.Status, "", false
	}
	return next, msg, true
}

// CancelEligible reports whether an order may still be cancelled: status
// Processing, not already cancelled, and within the cancellation window.
func CancelEligible(o Order, now time.Time) bool {
	if o.IsCancelled || o.Status != StatusProcessing {
		return false
	}
	return HoursSince(o.Timestamp, now) <= CancelWindowHours
}
