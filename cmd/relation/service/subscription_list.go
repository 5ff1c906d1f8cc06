package service

import (
	"context"

	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/feed"
	"MediaHub.com/pkg/paginate"
)

type SubscriberListRequest struct {
	Viewer    int64
	ChannelID int64
	Page      int64
	Limit     int64
}

type SubscribedChannelsRequest struct {
	Viewer       int64
	SubscriberID int64
	Page         int64
	Limit        int64
}

type SubscriptionListService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewSubscriptionListService(ctx context.Context, deps *app.Deps) *SubscriptionListService {
	return &SubscriptionListService{ctx: ctx, deps: deps}
}

// SubscriberList 频道的订阅者，isSubscribed 表示当前用户是否也订阅了该订阅者
func (service *SubscriptionListService) SubscriberList(req *SubscriberListRequest) (paginate.Result[*feed.SubscriberItem], error) {
	var empty paginate.Result[*feed.SubscriberItem]
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	rs := NewRelationService(service.ctx, service.deps)
	if err := rs.checkChannel(req.ChannelID, "Channel not found"); err != nil {
		return empty, err
	}
	p, err := feed.Build(feed.SubscriberList, feed.Params{Viewer: req.Viewer, ChannelID: req.ChannelID, Page: page})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.SubscriberItem](service.ctx, service.deps.Feed, p)
}

// SubscribedChannels 用户订阅的频道，附带每个频道最新发布的视频
func (service *SubscriptionListService) SubscribedChannels(req *SubscribedChannelsRequest) (paginate.Result[*feed.ChannelItem], error) {
	var empty paginate.Result[*feed.ChannelItem]
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	rs := NewRelationService(service.ctx, service.deps)
	if err := rs.checkChannel(req.SubscriberID, "Subscriber not found"); err != nil {
		return empty, err
	}
	p, err := feed.Build(feed.SubscribedChannelList, feed.Params{Viewer: req.Viewer, SubscriberID: req.SubscriberID, Page: page})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.ChannelItem](service.ctx, service.deps.Feed, p)
}
