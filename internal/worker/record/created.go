package record

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/storefront/internal/config"
	"github.com/Additional-Code/storefront/internal/event"
	"github.com/Additional-Code/storefront/internal/messaging"
	"github.com/Additional-Code/storefront/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/storefront/worker/record")

// Module registers record-related worker handlers.
var Module = fx.Module("worker_record",
	fx.Provide(
		fx.Annotate(
			NewCreatedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewCreatedHandler sets up a worker handler that logs record creations.
func NewCreatedHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: createdHandler(logger),
	}
}

func createdHandler(logger *zap.Logger) messaging.Handler {
	return func(ctx context.Context, msg messaging.Message) error {
		_, span := workerTracer.Start(ctx, "worker.records.created", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var evt event.RecordCreated
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Error("failed to decode record created", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		span.SetAttributes(attribute.String("record.entity", evt.Entity), attribute.Int64("record.id", evt.ID))

		logger.Info("record created event processed",
			zap.String("entity", evt.Entity),
			zap.Int64("id", evt.ID),
			zap.Time("occurred_at", evt.OccurredAt),
		)

		return nil
	}
}
