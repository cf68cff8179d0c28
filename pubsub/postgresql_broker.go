// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/dashcase/monitoring"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/lib/pq"
)

type PostgreSQLMessage struct {
	ID        string               `json:"id"`
	Channel   shared.PubSubChannel `json:"topic"`
	Payload   map[string]any       `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
	SenderID  string               `json:"sender_id,omitempty"`
}

func (m PostgreSQLMessage) GetChannel() shared.PubSubChannel {
	return m.Channel
}

func (m PostgreSQLMessage) GetPayload() map[string]any {
	return m.Payload
}

type listeningConnection struct {
	conn        *pgxpool.Conn
	subscribers []chan map[string]any
}

// PostgreSQLBroker implements the broker interface using PostgreSQL LISTEN/NOTIFY.
// Every instance connected to the same database receives the messages.
type PostgreSQLBroker struct {
	db                       *pgxpool.Pool
	subscribers              map[shared.PubSubChannel]listeningConnection
	subscribeMux             sync.RWMutex
	wg                       sync.WaitGroup
	ID                       string
	shouldReceiveOwnMessages bool
	ctx                      context.Context
	cancel                   context.CancelFunc
}

func (b *PostgreSQLBroker) SetShouldReceiveOwnMessages(should bool) {
	b.shouldReceiveOwnMessages = should
}

func NewPostgreSQLBroker(db *pgxpool.Pool) *PostgreSQLBroker {
	ctx, cancel := context.WithCancel(context.Background())
	return &PostgreSQLBroker{
		db:          db,
		subscribers: make(map[shared.PubSubChannel]listeningConnection),
		ID:          uuid.New().String(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (b *PostgreSQLBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	topic := message.GetChannel()

	pgMessage := PostgreSQLMessage{
		ID:        uuid.New().String(),
		Channel:   topic,
		Payload:   message.GetPayload(),
		Timestamp: time.Now(),
		SenderID:  b.ID,
	}

	messageJSON, err := json.Marshal(pgMessage)
	if err != nil {
		return fmt.Errorf("failed to marshal PostgreSQL message: %w", err)
	}

	// pg_notify accepts the payload as a bind parameter
	if _, err = b.db.Exec(ctx, "SELECT pg_notify($1, $2)", string(topic), string(messageJSON)); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	slog.Debug("message published", "topic", topic, "messageID", pgMessage.ID)
	return nil
}

func (b *PostgreSQLBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	b.subscribeMux.Lock()
	defer b.subscribeMux.Unlock()

	ch := make(chan map[string]any, 100)

	existing, exists := b.subscribers[topic]
	if !exists {
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		conn, err := b.db.Acquire(ctxWithTimeout)
		if err != nil {
			close(ch)
			return nil, fmt.Errorf("failed to acquire connection for listening: %w", err)
		}
		if _, err = conn.Exec(context.Background(), "LISTEN "+pq.QuoteIdentifier(string(topic))); err != nil {
			conn.Release()
			close(ch)
			return nil, fmt.Errorf("failed to listen on topic %s: %w", topic, err)
		}
		b.wg.Go(func() {
			b.processMessages(topic, conn)
		})
		existing = listeningConnection{conn: conn}
	}

	existing.subscribers = append(existing.subscribers, ch)
	b.subscribers[topic] = existing

	return ch, nil
}

func (b *PostgreSQLBroker) processMessages(topic shared.PubSubChannel, conn *pgxpool.Conn) {
	for {
		notification, err := conn.Conn().WaitForNotification(b.ctx)
		if err != nil {
			conn.Release()
			if b.ctx.Err() != nil {
				return
			}
			monitoring.Alert("could not listen for notifications from PostgreSQL broker", err)
			return
		}
		if notification == nil || notification.Channel != string(topic) {
			continue
		}

		var message PostgreSQLMessage
		if err := json.Unmarshal([]byte(notification.Payload), &message); err != nil {
			slog.Error("failed to unmarshal message", "error", err, "payload", notification.Payload)
			continue
		}

		if message.SenderID == b.ID && !b.shouldReceiveOwnMessages {
			slog.Debug("ignoring message sent by self", "messageID", message.ID, "topic", message.Channel)
			continue
		}

		b.subscribeMux.RLock()
		subscribers := b.subscribers[topic].subscribers
		b.subscribeMux.RUnlock()

		for _, subscriber := range subscribers {
			select {
			case subscriber <- message.Payload:
			default:
				slog.Warn("subscriber channel full, dropping message", "topic", topic, "messageID", message.ID)
			}
		}
	}
}

// Close stops listening on every topic and closes the subscriber channels.
func (b *PostgreSQLBroker) Close() error {
	b.cancel()
	b.wg.Wait()

	b.subscribeMux.Lock()
	defer b.subscribeMux.Unlock()
	for topic, listening := range b.subscribers {
		for _, ch := range listening.subscribers {
			close(ch)
		}
		delete(b.subscribers, topic)
	}
	return nil
}
