package event

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/storefront/internal/config"
	"github.com/Additional-Code/storefront/internal/messaging"
)

// Module provides the record event publisher.
var Module = fx.Provide(func(client messaging.Client, cfg config.Config, logger *zap.Logger) *Publisher {
	return NewPublisher(client, cfg.Messaging.Enabled, logger)
})
