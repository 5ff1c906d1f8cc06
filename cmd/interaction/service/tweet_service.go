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

type CreateTweetRequest struct {
	UserID  int64
	Content string
}

type UpdateTweetRequest struct {
	UserID  int64
	TweetID int64
	Content string
}

type DeleteTweetRequest struct {
	UserID  int64
	TweetID int64
}

type UserTweetsRequest struct {
	Viewer int64
	UserID int64
	Page   int64
	Limit  int64
}

type TweetService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewTweetService(ctx context.Context, deps *app.Deps) *TweetService {
	return &TweetService{ctx: ctx, deps: deps}
}

func tweetContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.InvalidArgumentErr.WithMessage("Tweet content is required")
	}
	return content, nil
}

func (service *TweetService) CreateTweet(req *CreateTweetRequest) (*model.Tweet, error) {
	content, err := tweetContent(req.Content)
	if err != nil {
		return nil, err
	}
	tweet := &model.Tweet{OwnerID: req.UserID, Content: content}
	if err := service.deps.Store.CreateTweet(service.ctx, tweet); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateTweet failed")
	}
	return tweet, nil
}

func (service *TweetService) ownedTweet(tweetId, userId int64) (*model.Tweet, error) {
	tweet, err := service.deps.Store.GetTweet(service.ctx, tweetId)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != userId {
		return nil, errno.ForbiddenErr.WithMessage("You are not allowed to modify this tweet")
	}
	return tweet, nil
}

func (service *TweetService) UpdateTweet(req *UpdateTweetRequest) (*model.Tweet, error) {
	content, err := tweetContent(req.Content)
	if err != nil {
		return nil, err
	}
	if _, err := service.ownedTweet(req.TweetID, req.UserID); err != nil {
		return nil, err
	}
	if err := service.deps.Store.UpdateTweet(service.ctx, req.TweetID, content); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateTweet failed")
	}
	return service.deps.Store.GetTweet(service.ctx, req.TweetID)
}

func (service *TweetService) DeleteTweet(req *DeleteTweetRequest) error {
	if _, err := service.ownedTweet(req.TweetID, req.UserID); err != nil {
		return err
	}
	return service.deps.Cascade.DeleteTweet(service.ctx, req.TweetID)
}

// UserTweets 用户主页的动态列表
func (service *TweetService) UserTweets(req *UserTweetsRequest) (paginate.Result[*feed.TweetItem], error) {
	var empty paginate.Result[*feed.TweetItem]
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	if ok, err := service.deps.Store.UserExists(service.ctx, req.UserID); err != nil {
		return empty, errors.WithMessage(err, "dao.UserExists failed")
	} else if !ok {
		return empty, errno.NotFoundErr.WithMessage("User does not exist")
	}
	p, err := feed.Build(feed.UserTweets, feed.Params{Viewer: req.Viewer, UserID: req.UserID, Page: page})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.TweetItem](service.ctx, service.deps.Feed, p)
}
