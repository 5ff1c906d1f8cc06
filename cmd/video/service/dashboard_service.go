package service

import (
	"context"

	"github.com/pkg/errors"

	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/feed"
	"MediaHub.com/pkg/paginate"
)

type ChannelVideosRequest struct {
	Viewer    int64
	ChannelID int64
	SortBy    string
	SortType  string
	Page      int64
	Limit     int64
}

type DashboardService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewDashboardService(ctx context.Context, deps *app.Deps) *DashboardService {
	return &DashboardService{ctx: ctx, deps: deps}
}

func (service *DashboardService) checkChannel(channelId int64) error {
	ok, err := service.deps.Store.UserExists(service.ctx, channelId)
	if err != nil {
		return errors.WithMessage(err, "dao.UserExists failed")
	}
	if !ok {
		return errno.NotFoundErr.WithMessage("Channel not found")
	}
	return nil
}

// ChannelStats 频道的订阅数、总点赞、总播放和视频数
func (service *DashboardService) ChannelStats(channelId int64) (*feed.ChannelStats, error) {
	if err := service.checkChannel(channelId); err != nil {
		return nil, err
	}
	p, err := feed.Build(feed.ChannelStatsKind, feed.Params{ChannelID: channelId})
	if err != nil {
		return nil, err
	}
	return service.deps.Feed.Stats(service.ctx, p)
}

// ChannelVideos 作者本人可以看到未发布的视频
func (service *DashboardService) ChannelVideos(req *ChannelVideosRequest) (paginate.Result[*feed.ChannelVideo], error) {
	var empty paginate.Result[*feed.ChannelVideo]
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	if err := service.checkChannel(req.ChannelID); err != nil {
		return empty, err
	}
	p, err := feed.Build(feed.ChannelVideos, feed.Params{
		Viewer:        req.Viewer,
		ChannelID:     req.ChannelID,
		ViewerIsOwner: req.Viewer != 0 && req.Viewer == req.ChannelID,
		SortBy:        req.SortBy,
		SortType:      req.SortType,
		Page:          page,
	})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.ChannelVideo](service.ctx, service.deps.Feed, p)
}
