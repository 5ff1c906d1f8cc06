package service

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

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

type CreateCommentRequest struct {
	UserID  int64
	VideoID int64
	Content string
}

type UpdateCommentRequest struct {
	UserID    int64
	CommentID int64
	Content   string
}

type DeleteCommentRequest struct {
	UserID    int64
	CommentID int64
}

type ListCommentsRequest struct {
	Viewer  int64
	VideoID int64
	Page    int64
	Limit   int64
}

type CommentService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewCommentService(ctx context.Context, deps *app.Deps) *CommentService {
	return &CommentService{ctx: ctx, deps: deps}
}

// validateCommentContent 去掉首尾空白后检查是否为空以及长度
func (service *CommentService) validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.InvalidArgumentErr.WithMessage("Comment content is required")
	}
	limit := service.deps.Config.Comment.MaxLength
	if limit > 0 && utf8.RuneCountInString(content) > limit {
		return "", errno.InvalidArgumentErr.WithMessage("Comment too long, maximum " + strconv.Itoa(limit) + " characters allowed")
	}
	return content, nil
}

// visibleVideo 未发布的视频只有作者本人能评论和查看评论
func (service *CommentService) visibleVideo(videoId, viewer int64) (*model.Video, error) {
	video, err := service.deps.Store.GetVideo(service.ctx, videoId)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewer {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	return video, nil
}

func (service *CommentService) CreateComment(req *CreateCommentRequest) (*model.Comment, error) {
	ctx := service.ctx
	content, err := service.validateCommentContent(req.Content)
	if err != nil {
		return nil, err
	}
	if _, err := service.visibleVideo(req.VideoID, req.UserID); err != nil {
		return nil, err
	}

	// 限流和去重都依赖 Redis，Redis 不可用时放行
	if guard := service.deps.Guard; guard != nil {
		if !guard.Allow(ctx, req.UserID) {
			return nil, errno.TooManyRequestsErr.WithMessage("Comment rate limit exceeded, please try again later")
		}
		if !guard.FirstSeen(ctx, req.UserID, req.VideoID, content) {
			return nil, errno.ConflictErr.WithMessage("Duplicate comment detected, please wait before posting similar content")
		}
	}

	comment := &model.Comment{
		VideoID: req.VideoID,
		OwnerID: req.UserID,
		Content: content,
	}
	if err := service.deps.Store.CreateComment(ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateComment failed")
	}

	if err := service.deps.Counters.ApplyDelta(ctx, counter.Video, counter.CommentsCount, req.VideoID, 1); err != nil {
		hlog.CtxWarnf(ctx, "comments_count left for reconciliation: video_id=%d", req.VideoID)
	}
	service.deps.Publish(ctx, mq.NewEngagementEvent(mq.EventComment, req.UserID, constants.LikeTargetVideo, req.VideoID))
	return comment, nil
}

// ownedComment 读取评论并校验是否为作者本人
func (service *CommentService) ownedComment(commentId, userId int64) (*model.Comment, error) {
	comment, err := service.deps.Store.GetComment(service.ctx, commentId)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != userId {
		return nil, errno.ForbiddenErr.WithMessage("You are not allowed to modify this comment")
	}
	return comment, nil
}

func (service *CommentService) UpdateComment(req *UpdateCommentRequest) (*model.Comment, error) {
	content, err := service.validateCommentContent(req.Content)
	if err != nil {
		return nil, err
	}
	if _, err := service.ownedComment(req.CommentID, req.UserID); err != nil {
		return nil, err
	}
	if err := service.deps.Store.UpdateComment(service.ctx, req.CommentID, content); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateComment failed")
	}
	return service.deps.Store.GetComment(service.ctx, req.CommentID)
}

// DeleteComment 删除评论及其点赞，视频的评论数由级联删除负责扣减
func (service *CommentService) DeleteComment(req *DeleteCommentRequest) error {
	comment, err := service.ownedComment(req.CommentID, req.UserID)
	if err != nil {
		return err
	}
	if err := service.deps.Cascade.DeleteComment(service.ctx, req.CommentID); err != nil {
		return errors.WithMessage(err, "cascade.DeleteComment failed")
	}
	service.deps.Publish(service.ctx, mq.NewEngagementEvent(mq.EventUncomment, req.UserID, constants.LikeTargetVideo, comment.VideoID))
	return nil
}

func (service *CommentService) ListComments(req *ListCommentsRequest) (paginate.Result[*feed.CommentItem], error) {
	var empty paginate.Result[*feed.CommentItem]
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	if _, err := service.visibleVideo(req.VideoID, req.Viewer); err != nil {
		return empty, err
	}
	p, err := feed.Build(feed.VideoComments, feed.Params{Viewer: req.Viewer, VideoID: req.VideoID, Page: page})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.CommentItem](service.ctx, service.deps.Feed, p)
}
