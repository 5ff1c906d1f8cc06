// Package cascade 按固定顺序删除父对象及其依赖数据
//
// 顺序：校验父对象存在 → 删除对象存储中的文件（失败只记日志）→ 删除父记录 → 删除指向父记录的点赞
// → 视频额外删除其评论以及评论收到的点赞。后三步在开启事务时一起提交，且不会因调用方取消而中断。
package cascade

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/counter"
	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/oss"
)

type Orchestrator struct {
	store         *db.Store
	blobs         oss.BlobStore
	counters      *counter.Manager
	transactional bool
}

func New(store *db.Store, blobs oss.BlobStore, counters *counter.Manager, transactional bool) *Orchestrator {
	return &Orchestrator{store: store, blobs: blobs, counters: counters, transactional: transactional}
}

// run 执行写步骤，transactional 关闭时按顺序非原子执行
func (o *Orchestrator) run(ctx context.Context, steps func(ctx context.Context, s *db.Store) error) error {
	ctx = context.WithoutCancel(ctx)
	if o.transactional {
		return o.store.Transaction(ctx, func(tx *db.Store) error {
			return steps(ctx, tx)
		})
	}
	return steps(ctx, o.store)
}

func (o *Orchestrator) deleteBlob(ctx context.Context, kind string, id int64, blobId string) {
	if blobId == "" || o.blobs == nil {
		return
	}
	if !o.blobs.Delete(ctx, blobId) {
		hlog.CtxErrorf(ctx, "cascade: delete %s blob failed, continuing: target_id=%d blob=%s", kind, id, blobId)
	}
}

// DeleteVideo 删除视频、视频的点赞、视频下的评论以及评论的点赞。不会修改任何计数
func (o *Orchestrator) DeleteVideo(ctx context.Context, videoId int64) error {
	video, err := o.store.GetVideo(ctx, videoId)
	if err != nil {
		return err
	}

	o.deleteBlob(ctx, "video", videoId, video.VideoBlobID)
	o.deleteBlob(ctx, "thumbnail", videoId, video.ThumbnailBlobID)

	err = o.run(ctx, func(ctx context.Context, s *db.Store) error {
		if _, err := s.DeleteVideo(ctx, videoId); err != nil {
			return errors.WithMessage(err, "delete video row")
		}
		if _, err := s.DeleteLikesByTarget(ctx, constants.LikeTargetVideo, videoId); err != nil {
			return errors.WithMessage(err, "delete video likes")
		}
		if _, err := s.DeleteLikesOfVideoComments(ctx, videoId); err != nil {
			return errors.WithMessage(err, "delete comment likes")
		}
		if _, err := s.DeleteCommentsByVideo(ctx, videoId); err != nil {
			return errors.WithMessage(err, "delete video comments")
		}
		return nil
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "cascade: delete video %d failed: %v", videoId, err)
		return err
	}
	return nil
}

// DeleteComment 删除评论及其点赞，提交后把所属视频的 commentsCount 减一
func (o *Orchestrator) DeleteComment(ctx context.Context, commentId int64) error {
	comment, err := o.store.GetComment(ctx, commentId)
	if err != nil {
		return err
	}

	var deleted bool
	err = o.run(ctx, func(ctx context.Context, s *db.Store) error {
		ok, err := s.DeleteComment(ctx, commentId)
		if err != nil {
			return errors.WithMessage(err, "delete comment row")
		}
		deleted = ok
		if _, err := s.DeleteLikesByTarget(ctx, constants.LikeTargetComment, commentId); err != nil {
			return errors.WithMessage(err, "delete comment likes")
		}
		return nil
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "cascade: delete comment %d failed: %v", commentId, err)
		return err
	}

	// 并发删除时只有真正删掉记录的一方扣减
	if deleted && o.counters != nil {
		o.counters.Absorb(context.WithoutCancel(ctx), counter.Video, counter.CommentsCount, comment.VideoID, -1)
	}
	return nil
}

// DeleteTweet 删除动态及其点赞
func (o *Orchestrator) DeleteTweet(ctx context.Context, tweetId int64) error {
	if _, err := o.store.GetTweet(ctx, tweetId); err != nil {
		return err
	}
	err := o.run(ctx, func(ctx context.Context, s *db.Store) error {
		if _, err := s.DeleteTweet(ctx, tweetId); err != nil {
			return errors.WithMessage(err, "delete tweet row")
		}
		if _, err := s.DeleteLikesByTarget(ctx, constants.LikeTargetTweet, tweetId); err != nil {
			return errors.WithMessage(err, "delete tweet likes")
		}
		return nil
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "cascade: delete tweet %d failed: %v", tweetId, err)
		return err
	}
	return nil
}
