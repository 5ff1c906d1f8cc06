package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"MediaHub.com/pkg/counter"
	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/mq"
)

const (
	lockExpiry = 10 * time.Second
	sweepBatch = 100
)

// Reconciler 根据来源表重新计算计数字段，并把同一目标的待处理任务标记完成
type Reconciler struct {
	store    *db.Store
	counters *counter.Manager
	// 多个 reconciler 实例同时运行时按目标加锁，redis 不可用时为 nil
	locks *redsync.Redsync
}

func NewReconciler(store *db.Store, counters *counter.Manager, client *redis.Client) *Reconciler {
	r := &Reconciler{store: store, counters: counters}
	if client != nil {
		r.locks = redsync.New(goredis.NewPool(client))
	}
	return r
}

// HandleReconcile 实现 mq.ReconcileHandler
func (r *Reconciler) HandleReconcile(ctx context.Context, msg *mq.ReconcileMessage) error {
	target, name := counter.Target(msg.Entity), counter.Name(msg.Counter)
	if r.locks != nil {
		mutex := r.locks.NewMutex(
			fmt.Sprintf("reconcile:%s:%s:%d", msg.Entity, msg.Counter, msg.TargetID),
			redsync.WithExpiry(lockExpiry),
			redsync.WithTries(3),
		)
		if err := mutex.LockContext(ctx); err != nil {
			return errors.WithMessage(err, "acquire reconcile lock failed")
		}
		defer func() {
			if _, err := mutex.UnlockContext(ctx); err != nil {
				hlog.CtxWarnf(ctx, "release reconcile lock failed: %v", err)
			}
		}()
	}

	if err := r.counters.Recompute(ctx, target, name, msg.TargetID); err != nil {
		return errors.WithMessage(err, "counter.Recompute failed")
	}
	resolved, err := r.store.ResolveReconcileTasks(ctx, msg.Entity, msg.TargetID, msg.Counter)
	if err != nil {
		return errors.WithMessage(err, "dao.ResolveReconcileTasks failed")
	}
	hlog.CtxInfof(ctx, "counter reconciled: entity=%s target_id=%d counter=%s resolved=%d",
		msg.Entity, msg.TargetID, msg.Counter, resolved)
	return nil
}

// Sweep 处理表里遗留的任务，覆盖消息队列未启用或投递丢失的情况
func (r *Reconciler) Sweep(ctx context.Context) (int, error) {
	tasks, err := r.store.ListPendingReconcileTasks(ctx, sweepBatch)
	if err != nil {
		return 0, errors.WithMessage(err, "dao.ListPendingReconcileTasks failed")
	}
	seen := make(map[string]struct{}, len(tasks))
	handled := 0
	for _, task := range tasks {
		key := fmt.Sprintf("%s:%s:%d", task.Entity, task.Counter, task.TargetID)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		err := r.HandleReconcile(ctx, &mq.ReconcileMessage{
			TaskID:   task.ID,
			Entity:   task.Entity,
			TargetID: task.TargetID,
			Counter:  task.Counter,
			Delta:    task.Delta,
			Reason:   task.Reason,
		})
		if err != nil {
			hlog.CtxErrorf(ctx, "sweep reconcile task %d failed: %v", task.ID, err)
			continue
		}
		handled++
	}
	return handled, nil
}

// RunSweeper 按固定间隔执行 Sweep，直到 ctx 结束
func (r *Reconciler) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if n, err := r.Sweep(ctx); err != nil {
			hlog.CtxErrorf(ctx, "reconcile sweep failed: %v", err)
		} else if n > 0 {
			hlog.CtxInfof(ctx, "reconcile sweep handled %d targets", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
