package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/interaction/service"
	"MediaHub.com/pkg/errno"
)

func CreateTweet(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	tweet, err := service.NewTweetService(ctx, common.Deps()).CreateTweet(&service.CreateTweetRequest{UserID: userId, Content: param.Content})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.NewErrNo(201, "Tweet created successfully"), tweet)
}

func UserTweets(ctx context.Context, c *app.RequestContext) {
	userId, err := common.PathID(c, "userId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	resp, err := service.NewTweetService(ctx, common.Deps()).UserTweets(&service.UserTweetsRequest{
		Viewer: mw.ViewerID(ctx, c), UserID: userId, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Tweets fetched successfully"), resp)
}

func UpdateTweet(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	tweetId, err := common.PathID(c, "tweetId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	tweet, err := service.NewTweetService(ctx, common.Deps()).UpdateTweet(&service.UpdateTweetRequest{
		UserID: userId, TweetID: tweetId, Content: param.Content,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Tweet updated successfully"), tweet)
}

func DeleteTweet(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	tweetId, err := common.PathID(c, "tweetId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	if err := service.NewTweetService(ctx, common.Deps()).DeleteTweet(&service.DeleteTweetRequest{UserID: userId, TweetID: tweetId}); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Tweet deleted successfully"), struct{}{})
}
