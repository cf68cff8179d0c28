package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/l3montree-dev/dashcase/shared"
)

// InMemoryBroker fans messages out to the subscribers of this process only.
// Publish never blocks: when a subscriber queue is full the message is dropped.
type InMemoryBroker struct {
	queueSize   int
	subscribers map[shared.PubSubChannel][]chan map[string]any
	mux         sync.RWMutex
	closed      bool
}

func NewInMemoryBroker(queueSize int) *InMemoryBroker {
	if queueSize <= 0 {
		queueSize = 100
	}
	return &InMemoryBroker{
		queueSize:   queueSize,
		subscribers: make(map[shared.PubSubChannel][]chan map[string]any),
	}
}

func (b *InMemoryBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	b.mux.RLock()
	defer b.mux.RUnlock()

	if b.closed {
		return fmt.Errorf("broker is closed")
	}

	topic := message.GetChannel()
	for _, subscriber := range b.subscribers[topic] {
		select {
		case subscriber <- message.GetPayload():
		case <-ctx.Done():
			return ctx.Err()
		default:
			slog.Warn("subscriber channel full, dropping message", "topic", topic)
		}
	}
	return nil
}

func (b *InMemoryBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	b.mux.Lock()
	defer b.mux.Unlock()

	if b.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	ch := make(chan map[string]any, b.queueSize)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch, nil
}

// Close closes every subscriber channel. Workers ranging over their channel
// terminate after draining it.
func (b *InMemoryBroker) Close() {
	b.mux.Lock()
	defer b.mux.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
}
