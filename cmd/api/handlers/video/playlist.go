package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/video/service"
	"MediaHub.com/pkg/errno"
)

func CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx, common.Deps()).CreatePlaylist(&service.PlaylistRequest{
		UserID: userId, Name: param.Name, Description: param.Description,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Playlist created successfully"), playlist)
}

func UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	playlistId, err := common.PathID(c, "playlistId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx, common.Deps()).UpdatePlaylist(&service.PlaylistRequest{
		UserID: userId, PlaylistID: playlistId, Name: param.Name, Description: param.Description,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Playlist updated successfully"), playlist)
}

func DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	playlistId, err := common.PathID(c, "playlistId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	if err := service.NewPlaylistService(ctx, common.Deps()).DeletePlaylist(userId, playlistId); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Playlist deleted successfully"), struct{}{})
}

func playlistVideoRequest(ctx context.Context, c *app.RequestContext) (*service.PlaylistVideoRequest, error) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		return nil, err
	}
	playlistId, err := common.PathID(c, "playlistId")
	if err != nil {
		return nil, err
	}
	videoId, err := common.PathID(c, "videoId")
	if err != nil {
		return nil, err
	}
	return &service.PlaylistVideoRequest{UserID: userId, PlaylistID: playlistId, VideoID: videoId}, nil
}

func AddVideoToPlaylist(ctx context.Context, c *app.RequestContext) {
	req, err := playlistVideoRequest(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx, common.Deps()).AddVideo(req)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Video added to playlist"), playlist)
}

func RemoveVideoFromPlaylist(ctx context.Context, c *app.RequestContext) {
	req, err := playlistVideoRequest(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx, common.Deps()).RemoveVideo(req)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Video removed from playlist"), playlist)
}

func GetPlaylist(ctx context.Context, c *app.RequestContext) {
	playlistId, err := common.PathID(c, "playlistId")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	detail, err := service.NewPlaylistService(ctx, common.Deps()).GetPlaylist(&service.GetPlaylistRequest{
		Viewer: mw.ViewerID(ctx, c), PlaylistID: playlistId, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Playlist fetched successfully"), detail)
}

func UserPlaylists(ctx context.Context, c *app.RequestContext) {
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
	resp, err := service.NewPlaylistService(ctx, common.Deps()).UserPlaylists(&service.UserPlaylistsRequest{
		UserID: userId, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Playlists fetched successfully"), resp)
}
