package application

import (
	"context"
	"testing"
	"time"

	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/notify"
	"github.com/ashirarif0999-sketch/blueember/internal/repository"
)

func TestRunStatusWorker_SweepsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := repository.NewOrderStore(repository.NewMemoryStore())
	e := NewOrderEngine(store, notify.NewRecorder(), nil)

	// seed an order created 30 hours ago
	created := time.Now().Add(-30 * time.Hour)
	n := domain.NewNotification("Your order #WORKER is currently under process.", domain.NotificationInfo, created)
	if err := store.Save(ctx, []domain.Order{{
		ID:            "#WORKER",
		Status:        domain.StatusProcessing,
		Timestamp:     created.UnixMilli(),
		LastUpdated:   created.UnixMilli(),
		Notifications: []domain.Notification{n},
	}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- RunStatusWorker(ctx, e, time.Hour)
	}()

	deadline := time.After(2 * time.Second)
	for {
		if got, _ := e.Order(ctx, "#WORKER"); got.Status == domain.StatusPacked {
			break
		}
		select {
		case <-deadline:
			t.Fatal("worker never advanced the order")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("worker exit: %v", err)
	}
}
