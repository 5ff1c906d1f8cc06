package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/relation/service"
	"MediaHub.com/pkg/errno"
)

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	common.SendResponse(c, err, data)
}

type PageParam struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	channelId, err := common.PathID(c, "channelId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	resp, err := service.NewRelationService(ctx, common.Deps()).ToggleSubscription(&service.ToggleSubscriptionRequest{
		SubscriberID: userId,
		ChannelID:    channelId,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	msg := "Unsubscribed successfully"
	if resp.IsSubscribed {
		msg = "Subscribed successfully"
	}
	SendResponse(c, errno.Success.WithMessage(msg), resp)
}

func SubscriberList(ctx context.Context, c *app.RequestContext) {
	channelId, err := common.PathID(c, "channelId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	resp, err := service.NewSubscriptionListService(ctx, common.Deps()).SubscriberList(&service.SubscriberListRequest{
		Viewer: mw.ViewerID(ctx, c), ChannelID: channelId, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Subscribers fetched successfully"), resp)
}

func SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	subscriberId, err := common.PathID(c, "subscriberId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	resp, err := service.NewSubscriptionListService(ctx, common.Deps()).SubscribedChannels(&service.SubscribedChannelsRequest{
		Viewer: mw.ViewerID(ctx, c), SubscriberID: subscriberId, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Subscribed channels fetched successfully"), resp)
}
