package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/counter"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/feed"
	"MediaHub.com/pkg/mq"
	"MediaHub.com/pkg/paginate"
)

type LikeActionRequest struct {
	UserID     int64
	TargetKind string
	TargetID   int64
	// toggle / like / unlike，为空按 toggle 处理
	ActionType string
}

type LikeActionResponse struct {
	TargetKind string `json:"targetType"`
	TargetID   int64  `json:"targetId,string"`
	IsLiked    bool   `json:"isLiked"`
}

// LikeActionService 点赞写入 likes 表后再通过 counter.Manager 修改冗余计数
type LikeActionService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewLikeActionService(ctx context.Context, deps *app.Deps) *LikeActionService {
	return &LikeActionService{ctx: ctx, deps: deps}
}

// LikeAction 处理点赞/取消点赞操作
func (service *LikeActionService) LikeAction(req *LikeActionRequest) (*LikeActionResponse, error) {
	ctx := service.ctx
	target, err := counter.ForLikeTarget(req.TargetKind)
	if err != nil {
		return nil, err
	}
	if err := service.checkTarget(req.TargetKind, req.TargetID); err != nil {
		return nil, err
	}

	action := req.ActionType
	if action == "" {
		action = constants.ActionToggle
	}
	store := service.deps.Store
	switch action {
	case constants.ActionToggle:
		liked, err := store.IsLiked(ctx, req.UserID, req.TargetKind, req.TargetID)
		if err != nil {
			return nil, errors.WithMessage(err, "dao.IsLiked failed")
		}
		if liked {
			action = constants.ActionUnlike
		} else {
			action = constants.ActionLike
		}
	case constants.ActionLike, constants.ActionUnlike:
	default:
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid action_type: " + req.ActionType)
	}

	resp := &LikeActionResponse{TargetKind: req.TargetKind, TargetID: req.TargetID}
	if action == constants.ActionLike {
		like := &model.Like{LikedBy: req.UserID}
		id := req.TargetID
		switch req.TargetKind {
		case constants.LikeTargetVideo:
			like.VideoID = &id
		case constants.LikeTargetComment:
			like.CommentID = &id
		case constants.LikeTargetTweet:
			like.TweetID = &id
		}
		created, err := store.CreateLike(ctx, like)
		if err != nil {
			return nil, errors.WithMessage(err, "dao.CreateLike failed")
		}
		// 已经点过赞时不重复计数
		if created {
			service.afterChange(target, req, 1, mq.EventLike)
		}
		resp.IsLiked = true
		return resp, nil
	}

	deleted, err := store.DeleteLike(ctx, req.UserID, req.TargetKind, req.TargetID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.DeleteLike failed")
	}
	if deleted {
		service.afterChange(target, req, -1, mq.EventUnlike)
	}
	return resp, nil
}

func (service *LikeActionService) checkTarget(kind string, id int64) error {
	store := service.deps.Store
	var err error
	switch kind {
	case constants.LikeTargetVideo:
		_, err = store.GetVideo(service.ctx, id)
	case constants.LikeTargetComment:
		_, err = store.GetComment(service.ctx, id)
	case constants.LikeTargetTweet:
		_, err = store.GetTweet(service.ctx, id)
	}
	return err
}

// afterChange 在点赞行已经提交之后执行，计数和事件的失败都不影响本次操作的结果
func (service *LikeActionService) afterChange(target counter.Target, req *LikeActionRequest, delta int64, event string) {
	if err := service.deps.Counters.ApplyDelta(service.ctx, target, counter.LikesCount, req.TargetID, delta); err != nil {
		hlog.CtxWarnf(service.ctx, "likes_count left for reconciliation: kind=%s target_id=%d", req.TargetKind, req.TargetID)
	}
	service.deps.Publish(service.ctx, mq.NewEngagementEvent(event, req.UserID, req.TargetKind, req.TargetID))
}

type LikedVideosRequest struct {
	UserID   int64
	SortBy   string
	SortType string
	Page     int64
	Limit    int64
}

type LikedVideosService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewLikedVideosService(ctx context.Context, deps *app.Deps) *LikedVideosService {
	return &LikedVideosService{ctx: ctx, deps: deps}
}

// LikedVideos 当前用户点赞过的已发布视频
func (service *LikedVideosService) LikedVideos(req *LikedVideosRequest) (paginate.Result[*feed.VideoItem], error) {
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return paginate.Result[*feed.VideoItem]{}, err
	}
	p, err := feed.Build(feed.LikedVideos, feed.Params{
		Viewer:   req.UserID,
		UserID:   req.UserID,
		SortBy:   req.SortBy,
		SortType: req.SortType,
		Page:     page,
	})
	if err != nil {
		return paginate.Result[*feed.VideoItem]{}, err
	}
	return feed.List[*feed.VideoItem](service.ctx, service.deps.Feed, p)
}
