package service

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/feed"
	"MediaHub.com/pkg/paginate"
	"MediaHub.com/pkg/utils"
)

// ChannelProfile 频道主页
type ChannelProfile struct {
	*model.User
	SubscribersCount          int64 `json:"subscribersCount"`
	ChannelsSubscribedToCount int64 `json:"channelsSubscribedToCount"`
	IsSubscribed              bool  `json:"isSubscribed"`
}

type WatchHistoryRequest struct {
	UserID int64
	Page   int64
	Limit  int64
}

type UserInfoService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewUserInfoService(ctx context.Context, deps *app.Deps) *UserInfoService {
	return &UserInfoService{ctx: ctx, deps: deps}
}

func removeTemp(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}

func (v *UserInfoService) CurrentUser(userId int64) (*model.User, error) {
	return v.deps.Store.GetUserByID(v.ctx, userId)
}

// ChannelProfile 按用户名查询频道，计数并发读取
func (v *UserInfoService) ChannelProfile(viewer int64, username string) (*ChannelProfile, error) {
	user, err := v.deps.Store.GetUserByIdentity(v.ctx, utils.NormalizeIdentity(username))
	if err != nil {
		return nil, err
	}
	profile := &ChannelProfile{User: user}

	g, ctx := errgroup.WithContext(v.ctx)
	g.Go(func() error {
		n, err := v.deps.Store.CountSubscribers(ctx, user.ID)
		profile.SubscribersCount = n
		return errors.WithMessage(err, "dao.CountSubscribers failed")
	})
	g.Go(func() error {
		n, err := v.deps.Store.CountSubscriptions(ctx, user.ID)
		profile.ChannelsSubscribedToCount = n
		return errors.WithMessage(err, "dao.CountSubscriptions failed")
	})
	g.Go(func() error {
		ok, err := v.deps.Store.IsSubscribed(ctx, viewer, user.ID)
		profile.IsSubscribed = ok
		return errors.WithMessage(err, "dao.IsSubscribed failed")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

// WatchHistory 按观看顺序返回，已删除的视频不会出现
func (v *UserInfoService) WatchHistory(req *WatchHistoryRequest) (paginate.Result[*feed.VideoItem], error) {
	var empty paginate.Result[*feed.VideoItem]
	page, err := v.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	p, err := feed.Build(feed.WatchHistory, feed.Params{Viewer: req.UserID, UserID: req.UserID, Page: page})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.VideoItem](v.ctx, v.deps.Feed, p)
}
