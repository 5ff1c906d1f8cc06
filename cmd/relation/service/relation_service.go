package service

import (
	"context"

	"github.com/pkg/errors"

	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/mq"
)

type ToggleSubscriptionRequest struct {
	SubscriberID int64
	ChannelID    int64
}

type ToggleSubscriptionResponse struct {
	ChannelID    int64 `json:"channelId,string"`
	IsSubscribed bool  `json:"isSubscribed"`
}

type RelationService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewRelationService(ctx context.Context, deps *app.Deps) *RelationService {
	return &RelationService{ctx: ctx, deps: deps}
}

// ToggleSubscription 已订阅则取消，否则订阅。不能订阅自己
func (service *RelationService) ToggleSubscription(req *ToggleSubscriptionRequest) (*ToggleSubscriptionResponse, error) {
	ctx := service.ctx
	store := service.deps.Store
	if err := service.checkChannel(req.ChannelID, "Channel not found"); err != nil {
		return nil, err
	}
	if req.SubscriberID == req.ChannelID {
		return nil, errno.ConflictErr.WithMessage("You cannot subscribe to yourself")
	}

	resp := &ToggleSubscriptionResponse{ChannelID: req.ChannelID}
	subscribed, err := store.IsSubscribed(ctx, req.SubscriberID, req.ChannelID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.IsSubscribed failed")
	}
	if subscribed {
		deleted, err := store.DeleteSubscription(ctx, req.SubscriberID, req.ChannelID)
		if err != nil {
			return nil, errors.WithMessage(err, "dao.DeleteSubscription failed")
		}
		if deleted {
			service.deps.Publish(ctx, mq.NewEngagementEvent(mq.EventUnsubscribe, req.SubscriberID, constants.TargetChannel, req.ChannelID))
		}
		return resp, nil
	}

	created, err := store.CreateSubscription(ctx, req.SubscriberID, req.ChannelID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.CreateSubscription failed")
	}
	if created {
		service.deps.Publish(ctx, mq.NewEngagementEvent(mq.EventSubscribe, req.SubscriberID, constants.TargetChannel, req.ChannelID))
	}
	resp.IsSubscribed = true
	return resp, nil
}

func (service *RelationService) checkChannel(userId int64, notFound string) error {
	ok, err := service.deps.Store.UserExists(service.ctx, userId)
	if err != nil {
		return errors.WithMessage(err, "dao.UserExists failed")
	}
	if !ok {
		return errno.NotFoundErr.WithMessage(notFound)
	}
	return nil
}
