package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/video/service"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/utils"
)

func ListVideos(ctx context.Context, c *app.RequestContext) {
	var param ListVideosParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	ownerId, err := utils.ParseOptionalID(param.UserId, "userId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	resp, err := service.NewVideoService(ctx, common.Deps()).ListVideos(&service.ListVideosRequest{
		Viewer:   mw.ViewerID(ctx, c),
		Query:    param.Query,
		OwnerID:  ownerId,
		SortBy:   param.SortBy,
		SortType: param.SortType,
		Page:     param.Page,
		Limit:    param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Videos fetched successfully"), resp)
}

func PublishVideo(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PublishParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	videoPath, err := common.SaveUpload(c, "videoFile")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	thumbPath, err := common.SaveUpload(c, "thumbnail")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	published := true
	if param.IsPublished != nil {
		published = *param.IsPublished
	}
	video, err := service.NewVideoService(ctx, common.Deps()).PublishVideo(&service.PublishVideoRequest{
		UserID:        userId,
		Title:         param.Title,
		Description:   param.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
		IsPublished:   published,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Video published successfully"), video)
}

func GetVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := common.PathID(c, "videoId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	detail, err := service.NewVideoService(ctx, common.Deps()).GetVideo(&service.GetVideoRequest{
		Viewer:  mw.ViewerID(ctx, c),
		VideoID: videoId,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Video fetched successfully"), detail)
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
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
	var param UpdateVideoParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	thumbPath, err := common.SaveUpload(c, "thumbnail")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	video, err := service.NewVideoService(ctx, common.Deps()).UpdateVideo(&service.UpdateVideoRequest{
		UserID:        userId,
		VideoID:       videoId,
		Title:         param.Title,
		Description:   param.Description,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Video updated successfully"), video)
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
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
	if err := service.NewVideoService(ctx, common.Deps()).DeleteVideo(userId, videoId); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Video deleted successfully"), struct{}{})
}

func TogglePublish(ctx context.Context, c *app.RequestContext) {
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
	resp, err := service.NewVideoService(ctx, common.Deps()).TogglePublish(userId, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Publish status toggled"), resp)
}
