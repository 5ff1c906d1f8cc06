package mq

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"

	"MediaHub.com/pkg/errno"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type ReconcileHandler interface {
	HandleReconcile(ctx context.Context, msg *ReconcileMessage) error
}

func NewConsumer(rabbitmqURL string, prefetch int) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.WithMessage(err, "failed to open a channel")
	}

	// 设置QoS，限制未确认消息数量
	if err = ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.WithMessage(err, "failed to set QoS")
	}

	if err = setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.WithMessage(err, "failed to setup topology")
	}

	return &Consumer{
		conn:    conn,
		channel: ch,
	}, nil
}

// ConsumeReconcile 阻塞直到 ctx 结束或投递通道关闭
func (c *Consumer) ConsumeReconcile(ctx context.Context, handler ReconcileHandler) error {
	msgs, err := c.channel.Consume(
		ReconcileQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return errors.WithMessage(err, "failed to register a consumer")
	}

	for {
		select {
		case <-ctx.Done():
			hlog.Info("Reconcile consumer context cancelled")
			return nil
		case d, ok := <-msgs:
			if !ok {
				hlog.Info("Reconcile consumer channel closed")
				return nil
			}
			dispatch(ctx, d, handler)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func dispatch(ctx context.Context, d amqp091.Delivery, handler ReconcileHandler) {
	handleDelivery(ctx, d.Body, &d, handler)
}

func handleDelivery(ctx context.Context, body []byte, ack acknowledger, handler ReconcileHandler) {
	var msg ReconcileMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		hlog.Errorf("Failed to unmarshal reconcile task: %v", err)
		ack.Nack(false, false) // 拒绝消息，不重新入队
		return
	}

	if err := handler.HandleReconcile(ctx, &msg); err != nil {
		if errors.Is(err, errno.InvalidArgumentErr) {
			// 参数错误重试也不会成功，丢弃（配置了死信交换机时进入死信队列）
			hlog.Errorf("Dropping invalid reconcile task %+v: %v", msg, err)
			ack.Nack(false, false)
			return
		}
		hlog.Errorf("Failed to handle reconcile task: %v", err)
		ack.Nack(false, true) // 拒绝消息，重新入队
		return
	}

	ack.Ack(false) // 确认消息
	hlog.CtxInfof(ctx, "Successfully processed reconcile task: %+v", msg)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
