package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app/apptest"
	"MediaHub.com/pkg/errno"
)

func newUser(t *testing.T, env *apptest.Env, name string) *model.User {
	u := &model.User{UserName: name, Email: name + "@example.com", FullName: name, Password: "x"}
	require.NoError(t, env.Store.CreateUser(context.Background(), u))
	return u
}

func TestSelfSubscriptionIsConflict(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	u := newUser(t, env, "alice")

	_, err := NewRelationService(ctx, env.Deps).ToggleSubscription(&ToggleSubscriptionRequest{SubscriberID: u.ID, ChannelID: u.ID})
	assert.True(t, errors.Is(err, errno.ConflictErr))

	n, err := env.Store.CountSubscribers(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestToggleSubscription(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	alice := newUser(t, env, "alice")
	bob := newUser(t, env, "bob")
	svc := NewRelationService(ctx, env.Deps)

	resp, err := svc.ToggleSubscription(&ToggleSubscriptionRequest{SubscriberID: alice.ID, ChannelID: bob.ID})
	require.NoError(t, err)
	assert.True(t, resp.IsSubscribed)

	resp, err = svc.ToggleSubscription(&ToggleSubscriptionRequest{SubscriberID: alice.ID, ChannelID: bob.ID})
	require.NoError(t, err)
	assert.False(t, resp.IsSubscribed)

	n, err := env.Store.CountSubscribers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.ToggleSubscription(&ToggleSubscriptionRequest{SubscriberID: alice.ID, ChannelID: 987654})
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestSubscriberListAndChannels(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	alice := newUser(t, env, "alice")
	bob := newUser(t, env, "bob")
	carol := newUser(t, env, "carol")
	svc := NewRelationService(ctx, env.Deps)

	// alice 和 carol 订阅 bob，bob 回订 alice
	for _, req := range []*ToggleSubscriptionRequest{
		{SubscriberID: alice.ID, ChannelID: bob.ID},
		{SubscriberID: carol.ID, ChannelID: bob.ID},
		{SubscriberID: bob.ID, ChannelID: alice.ID},
	} {
		_, err := svc.ToggleSubscription(req)
		require.NoError(t, err)
	}

	older := &model.Video{OwnerID: bob.ID, Title: "older", VideoUrl: "u", ThumbnailUrl: "t", IsPublished: true}
	require.NoError(t, env.Store.CreateVideo(ctx, older))
	latest := &model.Video{OwnerID: bob.ID, Title: "latest", VideoUrl: "u", ThumbnailUrl: "t", IsPublished: true}
	require.NoError(t, env.Store.CreateVideo(ctx, latest))
	draft := &model.Video{OwnerID: bob.ID, Title: "draft", VideoUrl: "u", ThumbnailUrl: "t"}
	require.NoError(t, env.Store.CreateVideo(ctx, draft))

	lists := NewSubscriptionListService(ctx, env.Deps)
	subs, err := lists.SubscriberList(&SubscriberListRequest{Viewer: bob.ID, ChannelID: bob.ID})
	require.NoError(t, err)
	require.Len(t, subs.Items, 2)
	assert.Equal(t, int64(2), subs.TotalItems)
	back := map[int64]bool{}
	for _, it := range subs.Items {
		back[it.ID] = it.IsSubscribed
	}
	assert.True(t, back[alice.ID])
	assert.False(t, back[carol.ID])

	channels, err := lists.SubscribedChannels(&SubscribedChannelsRequest{Viewer: alice.ID, SubscriberID: alice.ID})
	require.NoError(t, err)
	require.Len(t, channels.Items, 1)
	ch := channels.Items[0]
	assert.Equal(t, bob.ID, ch.ID)
	assert.Equal(t, int64(2), ch.SubscribersCount)
	require.NotNil(t, ch.LatestVideo)
	assert.Equal(t, latest.ID, ch.LatestVideo.ID)

	_, err = lists.SubscribedChannels(&SubscribedChannelsRequest{SubscriberID: 424242})
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = lists.SubscriberList(&SubscriberListRequest{ChannelID: bob.ID, Page: -1})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
}
