package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// OutboxRelay polls unprocessed outbox rows and hands them to a Publisher in
// insertion order.
type OutboxRelay struct {
	Store     *repository.Store
	Publisher events.Publisher
	Interval  time.Duration
	BatchSize int

	stopChan chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool
}

func NewOutboxRelay(store *repository.Store, publisher events.Publisher) *OutboxRelay {
	return &OutboxRelay{
		Store:     store,
		Publisher: publisher,
		Interval:  time.Second,
		BatchSize: 100,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the polling loop. It is a no-op once the relay is running
// or has been stopped.
func (r *OutboxRelay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running || r.stopped {
		return
	}
	r.running = true

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := r.ProcessPending(context.Background()); err != nil {
					utils.ErrorLogger.Printf("Outbox relay: %v", err)
				}
			case <-r.stopChan:
				return
			}
		}
	}()
}

// Stop halts polling and waits for the current batch to finish. A relay
// that was never started stops immediately.
func (r *OutboxRelay) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	running := r.running
	close(r.stopChan)
	r.mu.Unlock()

	if running {
		<-r.done
	}
}

// ProcessPending publishes one batch. A publish failure stops the batch so
// later events are not delivered ahead of it; the row is retried next tick.
func (r *OutboxRelay) ProcessPending(ctx context.Context) (int, error) {
	pending, err := r.Store.PendingOutboxEvents(ctx, r.BatchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, ev := range pending {
		msg := events.Message{
			ID:         ev.ID,
			Event:      ev.EventType,
			Aggregate:  ev.Aggregate,
			RecordID:   ev.RecordID,
			Data:       json.RawMessage(ev.Payload),
			OccurredAt: ev.CreatedAt,
		}
		if err := r.Publisher.Publish(ctx, msg); err != nil {
			return published, err
		}
		if err := r.Store.MarkOutboxProcessed(ctx, ev.ID, time.Now().UTC()); err != nil {
			return published, err
		}
		published++
	}

	if published > 0 {
		utils.InfoLogger.Printf("Outbox relay published %d event(s)", published)
	}
	return published, nil
}
