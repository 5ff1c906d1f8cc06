package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/interaction/service"
	"MediaHub.com/pkg/errno"
)

func ListComments(ctx context.Context, c *app.RequestContext) {
	videoId, err := common.PathID(c, "videoId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	resp, err := service.NewCommentService(ctx, common.Deps()).ListComments(&service.ListCommentsRequest{
		Viewer: mw.ViewerID(ctx, c), VideoID: videoId, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Comments fetched successfully"), resp)
}

func CreateComment(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	videoId, err := common.PathID(c, "videoId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	comment, err := service.NewCommentService(ctx, common.Deps()).CreateComment(&service.CreateCommentRequest{
		UserID: userId, VideoID: videoId, Content: param.Content,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.NewErrNo(201, "Comment added successfully"), comment)
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	commentId, err := common.PathID(c, "commentId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	comment, err := service.NewCommentService(ctx, common.Deps()).UpdateComment(&service.UpdateCommentRequest{
		UserID: userId, CommentID: commentId, Content: param.Content,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Comment updated successfully"), comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	commentId, err := common.PathID(c, "commentId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	if err := service.NewCommentService(ctx, common.Deps()).DeleteComment(&service.DeleteCommentRequest{
		UserID: userId, CommentID: commentId,
	}); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Comment deleted successfully"), struct{}{})
}
