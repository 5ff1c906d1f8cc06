package mq

import (
	"time"

	"github.com/google/uuid"
)

// EngagementEvent 点赞、评论、订阅成功后的通知事件，消费方自行决定用途
type EngagementEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`        // like, unlike, comment, uncomment, subscribe, unsubscribe
	UserID     int64  `json:"user_id"`     // 操作用户ID
	TargetKind string `json:"target_kind"` // video, comment, tweet, channel
	TargetID   int64  `json:"target_id"`
	Timestamp  int64  `json:"timestamp"`
}

// ReconcileMessage 计数器更新失败后投递给 reconciler 的任务
type ReconcileMessage struct {
	TaskID   int64  `json:"task_id"`
	Entity   string `json:"entity"`
	TargetID int64  `json:"target_id"`
	Counter  string `json:"counter"`
	Delta    int64  `json:"delta"`
	Reason   string `json:"reason"`
}

const (
	EventLike        = "like"
	EventUnlike      = "unlike"
	EventComment     = "comment"
	EventUncomment   = "uncomment"
	EventSubscribe   = "subscribe"
	EventUnsubscribe = "unsubscribe"
)

// 常量定义
const (
	// 交换机名称
	EngagementEventExchange = "engagement_events"
	ReconcileExchange       = "counter_reconcile"

	// 队列名称
	EngagementEventQueue = "engagement_event_queue"
	ReconcileQueue       = "counter_reconcile_queue"
)

func NewEngagementEvent(eventType string, userId int64, targetKind string, targetId int64) *EngagementEvent {
	return &EngagementEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     userId,
		TargetKind: targetKind,
		TargetID:   targetId,
		Timestamp:  time.Now().Unix(),
	}
}
