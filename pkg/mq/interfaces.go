package mq

import "context"

// EventPublisher 业务服务依赖的事件发布接口
type EventPublisher interface {
	PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error
}

// ReconcilePublisher counter 记录失败任务时使用
type ReconcilePublisher interface {
	PublishReconcile(ctx context.Context, msg *ReconcileMessage) error
}

// 确保Producer实现发布接口
var (
	_ EventPublisher     = (*Producer)(nil)
	_ ReconcilePublisher = (*Producer)(nil)
	_ EventPublisher     = NopPublisher{}
)

// NopPublisher 未启用 RabbitMQ 时使用，丢弃所有事件
type NopPublisher struct{}

func (NopPublisher) PublishEngagementEvent(context.Context, *EngagementEvent) error { return nil }
