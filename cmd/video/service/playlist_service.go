package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/feed"
	"MediaHub.com/pkg/paginate"
)

type PlaylistRequest struct {
	UserID      int64
	PlaylistID  int64
	Name        string
	Description string
}

type PlaylistVideoRequest struct {
	UserID     int64
	PlaylistID int64
	VideoID    int64
}

type GetPlaylistRequest struct {
	Viewer     int64
	PlaylistID int64
	Page       int64
	Limit      int64
}

type UserPlaylistsRequest struct {
	UserID int64
	Page   int64
	Limit  int64
}

// PlaylistDetail 播放列表及其中可见的视频
type PlaylistDetail struct {
	*model.Playlist
	Videos paginate.Result[*feed.VideoItem] `json:"videos"`
}

type PlaylistService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewPlaylistService(ctx context.Context, deps *app.Deps) *PlaylistService {
	return &PlaylistService{ctx: ctx, deps: deps}
}

func playlistFields(req *PlaylistRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	desc := strings.TrimSpace(req.Description)
	if name == "" || desc == "" {
		return "", "", errno.InvalidArgumentErr.WithMessage("Name and Description both are required")
	}
	return name, desc, nil
}

func (service *PlaylistService) CreatePlaylist(req *PlaylistRequest) (*model.Playlist, error) {
	name, desc, err := playlistFields(req)
	if err != nil {
		return nil, err
	}
	playlist := &model.Playlist{OwnerID: req.UserID, Name: name, Description: desc}
	if err := service.deps.Store.CreatePlaylist(service.ctx, playlist); err != nil {
		return nil, errors.WithMessage(err, "dao.CreatePlaylist failed")
	}
	return playlist, nil
}

func (service *PlaylistService) ownedPlaylist(playlistId, userId int64, denied string) (*model.Playlist, error) {
	playlist, err := service.deps.Store.GetPlaylist(service.ctx, playlistId)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userId {
		return nil, errno.ForbiddenErr.WithMessage(denied)
	}
	return playlist, nil
}

func (service *PlaylistService) UpdatePlaylist(req *PlaylistRequest) (*model.Playlist, error) {
	name, desc, err := playlistFields(req)
	if err != nil {
		return nil, err
	}
	if _, err := service.ownedPlaylist(req.PlaylistID, req.UserID, "You are not authorized to update this playlist"); err != nil {
		return nil, err
	}
	if err := service.deps.Store.UpdatePlaylist(service.ctx, req.PlaylistID, name, desc); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdatePlaylist failed")
	}
	return service.deps.Store.GetPlaylist(service.ctx, req.PlaylistID)
}

func (service *PlaylistService) DeletePlaylist(userId, playlistId int64) error {
	if _, err := service.ownedPlaylist(playlistId, userId, "You are not authorized to delete this playlist"); err != nil {
		return err
	}
	return service.deps.Store.DeletePlaylist(service.ctx, playlistId)
}

// AddVideo 视频已在列表中时不报错
func (service *PlaylistService) AddVideo(req *PlaylistVideoRequest) (*model.Playlist, error) {
	playlist, err := service.checkMembership(req)
	if err != nil {
		return nil, err
	}
	if _, err := service.deps.Store.AddPlaylistVideo(service.ctx, req.PlaylistID, req.VideoID); err != nil {
		return nil, errors.WithMessage(err, "dao.AddPlaylistVideo failed")
	}
	return playlist, nil
}

// RemoveVideo 视频不在列表中时不报错
func (service *PlaylistService) RemoveVideo(req *PlaylistVideoRequest) (*model.Playlist, error) {
	playlist, err := service.checkMembership(req)
	if err != nil {
		return nil, err
	}
	if _, err := service.deps.Store.RemovePlaylistVideo(service.ctx, req.PlaylistID, req.VideoID); err != nil {
		return nil, errors.WithMessage(err, "dao.RemovePlaylistVideo failed")
	}
	return playlist, nil
}

func (service *PlaylistService) checkMembership(req *PlaylistVideoRequest) (*model.Playlist, error) {
	ok, err := service.deps.Store.VideoExists(service.ctx, req.VideoID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.VideoExists failed")
	}
	if !ok {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	return service.ownedPlaylist(req.PlaylistID, req.UserID, "You are not authorized to make changes in this playlist")
}

// GetPlaylist 列表中的视频按加入顺序返回，只包含已发布或属于当前用户的视频
func (service *PlaylistService) GetPlaylist(req *GetPlaylistRequest) (*PlaylistDetail, error) {
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	playlist, err := service.deps.Store.GetPlaylist(service.ctx, req.PlaylistID)
	if err != nil {
		return nil, err
	}
	p, err := feed.Build(feed.PlaylistVideos, feed.Params{Viewer: req.Viewer, PlaylistID: req.PlaylistID, Page: page})
	if err != nil {
		return nil, err
	}
	videos, err := feed.List[*feed.VideoItem](service.ctx, service.deps.Feed, p)
	if err != nil {
		return nil, err
	}
	return &PlaylistDetail{Playlist: playlist, Videos: videos}, nil
}

func (service *PlaylistService) UserPlaylists(req *UserPlaylistsRequest) (paginate.Result[*feed.PlaylistItem], error) {
	var empty paginate.Result[*feed.PlaylistItem]
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	ok, err := service.deps.Store.UserExists(service.ctx, req.UserID)
	if err != nil {
		return empty, errors.WithMessage(err, "dao.UserExists failed")
	}
	if !ok {
		return empty, errno.NotFoundErr.WithMessage("User does not exist")
	}
	p, err := feed.Build(feed.UserPlaylists, feed.Params{UserID: req.UserID, Page: page})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.PlaylistItem](service.ctx, service.deps.Feed, p)
}
