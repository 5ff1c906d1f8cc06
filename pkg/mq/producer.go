package mq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.WithMessage(err, "failed to open a channel")
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	// 声明exchanges和queues
	if err := setupTopology(ch); err != nil {
		producer.Close()
		return nil, errors.WithMessage(err, "failed to setup topology")
	}

	return producer, nil
}

// setupTopology 生产者和消费者都会调用，声明是幂等的
func setupTopology(ch *amqp091.Channel) error {
	bindings := []struct {
		exchange string
		queue    string
	}{
		{EngagementEventExchange, EngagementEventQueue},
		{ReconcileExchange, ReconcileQueue},
	}
	for _, b := range bindings {
		err := ch.ExchangeDeclare(
			b.exchange,
			"direct",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return errors.WithMessagef(err, "failed to declare exchange %s", b.exchange)
		}

		_, err = ch.QueueDeclare(
			b.queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return errors.WithMessagef(err, "failed to declare queue %s", b.queue)
		}

		if err = ch.QueueBind(b.queue, "", b.exchange, false, nil); err != nil {
			return errors.WithMessagef(err, "failed to bind queue %s", b.queue)
		}
	}
	return nil
}

func (p *Producer) publish(ctx context.Context, exchange string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errors.WithMessage(err, "failed to marshal message")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(
		ctx,
		exchange,
		"",
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Producer) PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error {
	if err := p.publish(ctx, EngagementEventExchange, event); err != nil {
		return errors.WithMessage(err, "failed to publish engagement event")
	}
	hlog.CtxDebugf(ctx, "Published engagement event: %+v", event)
	return nil
}

func (p *Producer) PublishReconcile(ctx context.Context, msg *ReconcileMessage) error {
	if err := p.publish(ctx, ReconcileExchange, msg); err != nil {
		return errors.WithMessage(err, "failed to publish reconcile task")
	}
	hlog.CtxInfof(ctx, "Published reconcile task: %+v", msg)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
