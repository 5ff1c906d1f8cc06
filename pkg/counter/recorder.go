package counter

import (
	"context"

	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/mq"
)

// Recorder 保存重试后依旧失败的计数更新
type Recorder interface {
	Record(ctx context.Context, task *model.ReconcileTask) error
}

type RecorderFunc func(ctx context.Context, task *model.ReconcileTask) error

func (f RecorderFunc) Record(ctx context.Context, task *model.ReconcileTask) error {
	return f(ctx, task)
}

var Discard Recorder = RecorderFunc(func(context.Context, *model.ReconcileTask) error { return nil })

type TaskStore interface {
	CreateReconcileTask(ctx context.Context, task *model.ReconcileTask) error
}

// TableRecorder 写入 reconcile_tasks 表
func TableRecorder(store TaskStore) Recorder {
	return RecorderFunc(store.CreateReconcileTask)
}

// QueueRecorder 投递到 RabbitMQ，由 reconciler 消费
func QueueRecorder(pub mq.ReconcilePublisher) Recorder {
	return RecorderFunc(func(ctx context.Context, task *model.ReconcileTask) error {
		return pub.PublishReconcile(ctx, &mq.ReconcileMessage{
			TaskID:   task.ID,
			Entity:   task.Entity,
			TargetID: task.TargetID,
			Counter:  task.Counter,
			Delta:    task.Delta,
			Reason:   task.Reason,
		})
	})
}

// Chain 依次调用，先写表再投递队列，任意一个失败都会返回错误但不会中断后续调用
func Chain(recorders ...Recorder) Recorder {
	return RecorderFunc(func(ctx context.Context, task *model.ReconcileTask) error {
		var first error
		for _, r := range recorders {
			if err := r.Record(ctx, task); err != nil && first == nil {
				first = errors.WithMessage(err, "record reconcile task")
			}
		}
		return first
	})
}
