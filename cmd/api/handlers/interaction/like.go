package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/interaction/service"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/errno"
)

// LikeAction 返回处理某一类点赞对象的 handler，路径参数名与对象类型对应
func LikeAction(kind, param string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		userId, err := common.CurrentUserID(ctx, c)
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		targetId, err := common.PathID(c, param)
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		var like LikeParam
		if err := c.Bind(&like); err != nil {
			SendResponse(c, errno.ErrBind, nil)
			return
		}
		resp, err := service.NewLikeActionService(ctx, common.Deps()).LikeAction(&service.LikeActionRequest{
			UserID:     userId,
			TargetKind: kind,
			TargetID:   targetId,
			ActionType: like.ActionType,
		})
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		SendResponse(c, errno.Success, resp)
	}
}

var (
	ToggleVideoLike   = LikeAction(constants.LikeTargetVideo, "videoId")
	ToggleCommentLike = LikeAction(constants.LikeTargetComment, "commentId")
	ToggleTweetLike   = LikeAction(constants.LikeTargetTweet, "tweetId")
)

func LikedVideos(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	resp, err := service.NewLikedVideosService(ctx, common.Deps()).LikedVideos(&service.LikedVideosRequest{
		UserID: userId, SortBy: param.SortBy, SortType: param.SortType, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Liked videos fetched successfully"), resp)
}
