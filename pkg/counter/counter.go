// Package counter 是冗余计数字段的唯一写入口
package counter

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/errno"
)

type Target string

type Name string

const (
	Video   Target = "video"
	Comment Target = "comment"
	Tweet   Target = "tweet"

	LikesCount    Name = "likesCount"
	CommentsCount Name = "commentsCount"
)

// binding 描述一个计数字段落在哪张表哪一列，以及重新计算时的来源
type binding struct {
	table        string
	column       string
	sourceTable  string
	sourceColumn string
}

type key struct {
	target Target
	name   Name
}

var bindings = map[key]binding{
	{Video, LikesCount}:    {table: "videos", column: "likes_count", sourceTable: "likes", sourceColumn: "video_id"},
	{Video, CommentsCount}: {table: "videos", column: "comments_count", sourceTable: "comments", sourceColumn: "video_id"},
	{Comment, LikesCount}:  {table: "comments", column: "likes_count", sourceTable: "likes", sourceColumn: "comment_id"},
	{Tweet, LikesCount}:    {table: "tweets", column: "likes_count", sourceTable: "likes", sourceColumn: "tweet_id"},
}

func lookup(target Target, name Name) (binding, error) {
	b, ok := bindings[key{target, name}]
	if !ok {
		return binding{}, errno.InvalidArgumentErr.WithMessage("unknown counter " + string(target) + "." + string(name))
	}
	return b, nil
}

// Store 计数器依赖的存储能力，*db.Store 实现了它
type Store interface {
	AddToCounter(ctx context.Context, table, column string, id, delta int64) error
	RecomputeCounter(ctx context.Context, table, column, sourceTable, sourceColumn string, id int64) error
}

type Manager struct {
	store    Store
	recorder Recorder
	backoff  time.Duration
}

func NewManager(store Store, recorder Recorder, backoff time.Duration) *Manager {
	if recorder == nil {
		recorder = Discard
	}
	return &Manager{store: store, recorder: recorder, backoff: backoff}
}

// ApplyDelta 原子地把 delta 加到计数上并在 0 处截断。失败重试一次，仍失败则记录对账任务
// 并返回 DependencyFailureErr，调用方只记录不回滚主操作
func (m *Manager) ApplyDelta(ctx context.Context, target Target, name Name, id, delta int64) error {
	b, err := lookup(target, name)
	if err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	err = m.store.AddToCounter(ctx, b.table, b.column, id, delta)
	if err == nil {
		return nil
	}
	hlog.CtxWarnf(ctx, "counter update failed, retrying: entity=%s target_id=%d counter=%s delta=%d err=%v",
		target, id, name, delta, err)

	if m.backoff > 0 {
		timer := time.NewTimer(m.backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	if err = m.store.AddToCounter(context.WithoutCancel(ctx), b.table, b.column, id, delta); err == nil {
		return nil
	}

	hlog.CtxErrorf(ctx, "counter update failed after retry: entity=%s target_id=%d counter=%s delta=%d err=%v",
		target, id, name, delta, err)
	task := &model.ReconcileTask{
		Entity:   string(target),
		TargetID: id,
		Counter:  string(name),
		Delta:    delta,
		Reason:   err.Error(),
	}
	if rerr := m.recorder.Record(context.WithoutCancel(ctx), task); rerr != nil {
		hlog.CtxErrorf(ctx, "record reconcile task failed: entity=%s target_id=%d counter=%s delta=%d err=%v",
			target, id, name, delta, rerr)
	}
	return errors.WithMessage(errno.DependencyFailureErr, err.Error())
}

// Recompute 从来源表重新统计计数，可重复执行
func (m *Manager) Recompute(ctx context.Context, target Target, name Name, id int64) error {
	b, err := lookup(target, name)
	if err != nil {
		return err
	}
	return m.store.RecomputeCounter(ctx, b.table, b.column, b.sourceTable, b.sourceColumn, id)
}

// Absorb 主操作已成功时使用，计数失败只记日志
func (m *Manager) Absorb(ctx context.Context, target Target, name Name, id, delta int64) {
	if err := m.ApplyDelta(ctx, target, name, id, delta); err != nil {
		hlog.CtxWarnf(ctx, "counter delta absorbed: entity=%s target_id=%d counter=%s delta=%d err=%v",
			target, id, name, delta, err)
	}
}

// ForLikeTarget 点赞对象类型对应的计数目标
func ForLikeTarget(kind string) (Target, error) {
	switch Target(kind) {
	case Video, Comment, Tweet:
		return Target(kind), nil
	}
	return "", errno.InvalidArgumentErr.WithMessage("unknown like target " + kind)
}
