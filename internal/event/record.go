// Package event defines the messages published when records are created.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Additional-Code/storefront/internal/messaging"
)

// Entity names carried by RecordCreated.
const (
	EntityUser    = "user"
	EntityProduct = "product"
	EntityOrder   = "order"
)

// RecordCreated is emitted after a row has been inserted.
type RecordCreated struct {
	Entity     string    `json:"entity"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key is the partitioning key of the event, e.g. "order-12".
func (e RecordCreated) Key() []byte {
	return []byte(fmt.Sprintf("%s-%d", e.Entity, e.ID))
}

// Publisher emits RecordCreated events. Failures are logged and never reach the caller: the
// row is already committed.
type Publisher struct {
	client  messaging.Client
	enabled bool
	logger  *zap.Logger
	now     func() time.Time
}

// NewPublisher wraps client. A disabled publisher drops every event.
func NewPublisher(client messaging.Client, enabled bool, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, enabled: enabled, logger: logger, now: time.Now}
}

// RecordCreated publishes the creation of entity/id.
func (p *Publisher) RecordCreated(ctx context.Context, entity string, id int64) {
	if p == nil || !p.enabled || p.client == nil {
		return
	}
	evt := RecordCreated{Entity: entity, ID: id, OccurredAt: p.now().UTC()}
	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("marshal record created", zap.Error(err))
		return
	}
	if err := p.client.Publish(ctx, evt.Key(), payload); err != nil {
		p.logger.Error("publish record created",
			zap.String("entity", entity),
			zap.Int64("id", id),
			zap.Error(err),
		)
	}
}
