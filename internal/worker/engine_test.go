package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/storefront/internal/config"
	"github.com/Additional-Code/storefront/internal/messaging"
)

type onceClient struct {
	once sync.Once
	msg  messaging.Message
}

func (c *onceClient) Publish(context.Context, []byte, []byte) error { return nil }

func (c *onceClient) Consume(ctx context.Context, handler messaging.Handler) error {
	c.once.Do(func() { _ = handler(ctx, c.msg) })
	<-ctx.Done()
	return ctx.Err()
}

func (c *onceClient) Topic() string { return c.msg.Topic }

func enabledConfig() config.Config {
	return config.Config{Messaging: config.Messaging{
		Enabled: true,
		Workers: config.Worker{Enabled: true, Concurrency: 2},
	}}
}

func TestEngineDispatchesByTopic(t *testing.T) {
	received := make(chan messaging.Message, 1)
	client := &onceClient{msg: messaging.Message{Topic: "storefront.records", Value: []byte("{}")}}

	engine := NewEngine(Params{
		Client: client,
		Logger: zaptest.NewLogger(t),
		Config: enabledConfig(),
		Registrations: []HandlerRegistration{
			{Topic: "storefront.records", Handler: func(_ context.Context, msg messaging.Message) error {
				received <- msg
				return nil
			}},
			{Topic: "", Handler: nil},
		},
	})
	require.Len(t, engine.registrations, 1)

	require.NoError(t, engine.start(context.Background()))

	select {
	case msg := <-received:
		assert.Equal(t, "storefront.records", msg.Topic)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not dispatched")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, engine.stop(stopCtx))
}

func TestEngineDisabledDoesNothing(t *testing.T) {
	engine := NewEngine(Params{
		Client: &onceClient{},
		Logger: zaptest.NewLogger(t),
		Config: config.Config{},
	})

	require.NoError(t, engine.start(context.Background()))
	assert.Nil(t, engine.cancel)
	assert.NoError(t, engine.stop(context.Background()))
}

func TestEngineIgnoresUnknownTopic(t *testing.T) {
	engine := NewEngine(Params{
		Client: &onceClient{},
		Logger: zaptest.NewLogger(t),
		Config: enabledConfig(),
	})

	assert.NoError(t, engine.dispatch(context.Background(), 0, messaging.Message{Topic: "elsewhere"}))
}
