package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/storefront/internal/config"
)

func TestNewClientDisabledIsNoop(t *testing.T) {
	cfg := config.Config{Messaging: config.Messaging{Enabled: false, Kafka: config.Kafka{Topic: "storefront.records"}}}

	client, err := NewClient(fxtest.NewLifecycle(t), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "storefront.records", client.Topic())
	assert.NoError(t, client.Publish(context.Background(), []byte("k"), []byte("v")))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, client.Consume(ctx, func(context.Context, Message) error { return nil }), context.DeadlineExceeded)
}

func TestNewClientRejectsUnknownDriver(t *testing.T) {
	cfg := config.Config{Messaging: config.Messaging{Enabled: true, Driver: "nats"}}

	_, err := NewClient(fxtest.NewLifecycle(t), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestHeaderMap(t *testing.T) {
	assert.Nil(t, headerMap(nil))
	assert.Equal(t,
		map[string]string{"content-type": ContentTypeJSON},
		headerMap([]kafka.Header{{Key: "content-type", Value: []byte(ContentTypeJSON)}}),
	)
}
