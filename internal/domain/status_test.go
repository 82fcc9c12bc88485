package domain

import (
	"strings"
	"testing"
	"time"
)

func orderAt(created time.Time, status Status) Order {
	ms := created.UnixMilli()
	return Order{
		ID:          "#TEST01",
		Timestamp:   ms,
		LastUpdated: ms,
		Status:      status,
	}
}

func TestNextStatus_Thresholds(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		elapsed    time.Duration
		current    Status
		want       Status
		wantChange bool
		wantInMsg  string
	}{
		{"fresh order stays processing", time.Hour, StatusProcessing, StatusProcessing, false, ""},
		{"just under packed threshold", 24*time.Hour - time.Minute, StatusProcessing, StatusProcessing, false, ""},
		{"packed at 24h", 24 * time.Hour, StatusProcessing, StatusPacked, true, "packed"},
		{"packed window upper edge", 47 * time.Hour, StatusProcessing, StatusPacked, true, "packed"},
		{"shipped at 48h", 48 * time.Hour, StatusProcessing, StatusShipped, true, "arrived in your country"},
		{"shipped from packed", 50 * time.Hour, StatusPacked, StatusShipped, true, "arrived in your country"},
		{"delivered at 72h", 72 * time.Hour, StatusProcessing, StatusDelivered, true, "delivered successfully"},
		{"delivered from shipped", 100 * time.Hour, StatusShipped, StatusDelivered, true, "delivered successfully"},
		{"already packed stays put", 30 * time.Hour, StatusPacked, StatusPacked, false, ""},
		{"already shipped stays put", 60 * time.Hour, StatusShipped, StatusShipped, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := orderAt(created, tt.current)
			got, msg, changed := NextStatus(o, created.Add(tt.elapsed))
			if got != tt.want {
				t.Fatalf("status: got %q, want %q", got, tt.want)
			}
			if changed != tt.wantChange {
				t.Fatalf("changed: got %v, want %v", changed, tt.wantChange)
			}
			if tt.wantInMsg != "" && !strings.Contains(msg, tt.wantInMsg) {
				t.Fatalf("message %q does not contain %q", msg, tt.wantInMsg)
			}
		})
	}
}

func TestNextStatus_CancelledNeverAdvances(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	o := orderAt(created, StatusCancelled)
	o.IsCancelled = true

	if _, _, changed := NextStatus(o, created.Add(200*time.Hour)); changed {
		t.Fatal("cancelled order must never transition")
	}
}

func TestNextStatus_DeliveredIsTerminal(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	o := orderAt(created, StatusDelivered)

	if _, _, changed := NextStatus(o, created.Add(500*time.Hour)); changed {
		t.Fatal("delivered order must never transition")
	}
}

func TestCancelEligible(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		elapsed   time.Duration
		status    Status
		cancelled bool
		want      bool
	}{
		{"fresh processing order", time.Hour, StatusProcessing, false, true},
		{"at the 24h edge", 24 * time.Hour, StatusProcessing, false, true},
		{"past the window", 24*time.Hour + time.Minute, StatusProcessing, false, false},
		{"already packed", time.Hour, StatusPacked, false, false},
		{"already cancelled", time.Hour, StatusCancelled, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := orderAt(created, tt.status)
			o.IsCancelled = tt.cancelled
			if got := CancelEligible(o, created.Add(tt.elapsed)); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewOrderID_Format(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		id := NewOrderID()
		if len(id) != 7 || id[0] != '#' {
			t.Fatalf("unexpected id %q", id)
		}
		for _, c := range id[1:] {
			if !strings.ContainsRune(orderIDAlphabet, c) {
				t.Fatalf("id %q contains %q outside the alphabet", id, c)
			}
		}
	}
}
