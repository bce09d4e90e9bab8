package queue

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Asset lifecycle event names. Downstream consumers (cache invalidation,
// audit) key off these; this service only ever publishes inline on the
// request path, never from a background loop.
const (
	EventAssetCreated     = "asset.created"
	EventAssetUpdated     = "asset.updated"
	EventAssetTransferred = "asset.transferred"
	EventAssetDeleted     = "asset.deleted"
	EventAssetGCSwept     = "asset.gc_swept"
)

// Publisher emits lifecycle events. Publishing is best-effort: a failed
// publish is logged and never fails the originating operation.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any)
	Close() error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
}

// NewAMQPPublisher declares a topic exchange and returns a publisher bound
// to it.
func NewAMQPPublisher(conn *amqp.Connection, exchange string, log *zap.Logger) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event string, payload any) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		p.log.Sugar().Errorw("marshal event payload", "event", event, "err", err)
		return
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, event, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		p.log.Sugar().Errorw("publish event", "event", event, "err", err)
	}
}

func (p *amqpPublisher) Close() error {
	return p.ch.Close()
}

type nopPublisher struct{}

// NewNopPublisher is used when no message broker is configured.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, string, any) {}
func (nopPublisher) Close() error                         { return nil }
