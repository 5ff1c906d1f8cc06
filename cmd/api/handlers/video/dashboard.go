package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/video/service"
	"MediaHub.com/pkg/errno"
)

func ChannelStats(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	stats, err := service.NewDashboardService(ctx, common.Deps()).ChannelStats(userId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Channel stats fetched successfully"), stats)
}

// ChannelVideos 未指定 channelId 时返回当前用户自己的视频
func ChannelVideos(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	viewer := mw.ViewerID(ctx, c)
	channelId := viewer
	if c.Param("channelId") != "" {
		id, err := common.PathID(c, "channelId")
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		channelId = id
	}
	if channelId == 0 {
		SendResponse(c, errno.AuthorizationFailedErr.WithMessage("Unauthorized request"), nil)
		return
	}
	resp, err := service.NewDashboardService(ctx, common.Deps()).ChannelVideos(&service.ChannelVideosRequest{
		Viewer:    viewer,
		ChannelID: channelId,
		SortBy:    param.SortBy,
		SortType:  param.SortType,
		Page:      param.Page,
		Limit:     param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Channel videos fetched successfully"), resp)
}
