package feed

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/dal/db/dbtest"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/paginate"
	"MediaHub.com/pkg/search"
)

type env struct {
	t     *testing.T
	ctx   context.Context
	store *db.Store
	exec  *Executor
}

func newEnv(t *testing.T) *env {
	s := dbtest.New(t)
	return &env{t: t, ctx: context.Background(), store: s, exec: NewExecutor(s, search.NewSQLSearcher(s), 100)}
}

func (e *env) user(name string) *model.User {
	u := &model.User{UserName: name, Email: name + "@example.com", FullName: name, Password: "x"}
	require.NoError(e.t, e.store.CreateUser(e.ctx, u))
	return u
}

func (e *env) video(owner int64, title string, published bool, views int64) *model.Video {
	v := &model.Video{OwnerID: owner, Title: title, VideoUrl: "u", ThumbnailUrl: "t", IsPublished: published, Duration: float64(views)}
	require.NoError(e.t, e.store.CreateVideo(e.ctx, v))
	for i := int64(0); i < views; i++ {
		require.NoError(e.t, e.store.IncrementViews(e.ctx, v.ID))
	}
	return v
}

func (e *env) build(kind Kind, params Params) *Pipeline {
	p, err := Build(kind, params)
	require.NoError(e.t, err)
	return p
}

func TestUnpublishedOnlyVisibleToOwner(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	pub := e.video(owner.ID, "public", true, 0)
	draft := e.video(owner.ID, "draft", false, 0)

	global, err := List[*VideoItem](e.ctx, e.exec, e.build(GlobalVideos, Params{}))
	require.NoError(t, err)
	require.Len(t, global.Items, 1)
	assert.Equal(t, pub.ID, global.Items[0].ID)
	require.NotNil(t, global.Items[0].Owner)
	assert.Equal(t, "owner", global.Items[0].Owner.UserName)

	mine, err := List[*ChannelVideo](e.ctx, e.exec, e.build(ChannelVideos, Params{ChannelID: owner.ID, ViewerIsOwner: true}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalItems)
	assert.Equal(t, draft.ID, mine.Items[0].ID)

	theirs, err := List[*ChannelVideo](e.ctx, e.exec, e.build(ChannelVideos, Params{ChannelID: owner.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), theirs.TotalItems)
}

func TestPaginationWindow(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	for i := 0; i < 5; i++ {
		e.video(owner.ID, "v", true, 0)
	}

	res, err := e.exec.Run(e.ctx, e.build(GlobalVideos, Params{Page: paginate.Params{Page: 3, Limit: 2}}))
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, int64(5), res.TotalItems)
	assert.Equal(t, int64(3), res.TotalPages)

	res, err = e.exec.Run(e.ctx, e.build(GlobalVideos, Params{Page: paginate.Params{Page: 4, Limit: 2}}))
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(5), res.TotalItems)
	assert.Equal(t, int64(3), res.TotalPages)
}

func TestHugePageIsEmpty(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	for i := 0; i < 3; i++ {
		e.video(owner.ID, "v", true, 0)
	}

	page, err := paginate.New(math.MaxInt64/10+2, 10, 10, 100)
	require.NoError(t, err)
	res, err := List[*VideoItem](e.ctx, e.exec, e.build(GlobalVideos, Params{Page: page}))
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(3), res.TotalItems)
	assert.Equal(t, int64(1), res.TotalPages)
}

// 检索候选集合受 maxHits 限制，总数只统计候选中可见的视频
func TestSearchCandidatesCappedByMaxHits(t *testing.T) {
	s := dbtest.New(t)
	e := &env{t: t, ctx: context.Background(), store: s, exec: NewExecutor(s, search.NewSQLSearcher(s), 2)}
	owner := e.user("owner")
	for i := 0; i < 4; i++ {
		e.video(owner.ID, "cat", true, 0)
	}

	res, err := List[*VideoItem](e.ctx, e.exec, e.build(GlobalVideos, Params{Query: "cat"}))
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.TotalItems)
}

func TestSortAndSearch(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	e.video(owner.ID, "cat one", true, 3)
	e.video(owner.ID, "cat two", true, 1)
	e.video(owner.ID, "dog", true, 2)

	res, err := List[*VideoItem](e.ctx, e.exec, e.build(GlobalVideos, Params{SortBy: "views", SortType: "asc"}))
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{res.Items[0].Views, res.Items[1].Views, res.Items[2].Views})

	res, err = List[*VideoItem](e.ctx, e.exec, e.build(GlobalVideos, Params{Query: "cat", SortBy: "duration"}))
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "cat one", res.Items[0].Title)

	res, err = List[*VideoItem](e.ctx, e.exec, e.build(GlobalVideos, Params{Query: "zebra"}))
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.TotalItems)
}

func TestVideoDetail(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	viewer := e.user("viewer")
	v := e.video(owner.ID, "clip", true, 0)
	_, err := e.store.CreateSubscription(e.ctx, viewer.ID, owner.ID)
	require.NoError(t, err)
	_, err = e.store.CreateLike(e.ctx, &model.Like{VideoID: &v.ID, LikedBy: viewer.ID})
	require.NoError(t, err)

	d, err := Get[*VideoDetail](e.ctx, e.exec, e.build(VideoDetailKind, Params{VideoID: v.ID, Viewer: viewer.ID}))
	require.NoError(t, err)
	assert.True(t, d.IsLiked)
	require.NotNil(t, d.Owner)
	assert.Equal(t, int64(1), d.Owner.SubscribersCount)
	assert.True(t, d.Owner.IsSubscribed)

	// 第二次读取：播放量加一，观看历史不重复
	_, err = Get[*VideoDetail](e.ctx, e.exec, e.build(VideoDetailKind, Params{VideoID: v.ID, Viewer: viewer.ID}))
	require.NoError(t, err)
	got, err := e.store.GetVideo(e.ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	history, err := List[*VideoItem](e.ctx, e.exec, e.build(WatchHistory, Params{UserID: viewer.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), history.TotalItems)

	anon, err := Get[*VideoDetail](e.ctx, e.exec, e.build(VideoDetailKind, Params{VideoID: v.ID}))
	require.NoError(t, err)
	assert.False(t, anon.IsLiked)
	assert.False(t, anon.Owner.IsSubscribed)
}

func TestVideoDetailHidesOthersDrafts(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	draft := e.video(owner.ID, "draft", false, 0)

	_, err := e.exec.One(e.ctx, e.build(VideoDetailKind, Params{VideoID: draft.ID, Viewer: 999}))
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	d, err := Get[*VideoDetail](e.ctx, e.exec, e.build(VideoDetailKind, Params{VideoID: draft.ID, Viewer: owner.ID}))
	require.NoError(t, err)
	assert.False(t, d.IsPublished)
}

func TestRelationFeedsSkipOrphans(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	fan := e.user("fan")
	keep := e.video(owner.ID, "keep", true, 0)
	gone := e.video(owner.ID, "gone", true, 0)
	for _, v := range []*model.Video{keep, gone} {
		_, err := e.store.CreateLike(e.ctx, &model.Like{VideoID: &v.ID, LikedBy: fan.ID})
		require.NoError(t, err)
	}
	_, err := e.store.DeleteVideo(e.ctx, gone.ID)
	require.NoError(t, err)

	liked, err := List[*VideoItem](e.ctx, e.exec, e.build(LikedVideos, Params{UserID: fan.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.TotalItems)
	require.Len(t, liked.Items, 1)
	assert.Equal(t, keep.ID, liked.Items[0].ID)
}

func TestVideoCommentsCollapseMissingOwner(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	v := e.video(owner.ID, "clip", true, 0)
	c1 := &model.Comment{VideoID: v.ID, OwnerID: owner.ID, Content: "first"}
	c2 := &model.Comment{VideoID: v.ID, OwnerID: 424242, Content: "ghost"}
	require.NoError(t, e.store.CreateComment(e.ctx, c1))
	require.NoError(t, e.store.CreateComment(e.ctx, c2))
	_, err := e.store.CreateLike(e.ctx, &model.Like{CommentID: &c1.ID, LikedBy: owner.ID})
	require.NoError(t, err)

	res, err := List[*CommentItem](e.ctx, e.exec, e.build(VideoComments, Params{VideoID: v.ID, Viewer: owner.ID}))
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "ghost", res.Items[0].Content)
	assert.Nil(t, res.Items[0].Owner)
	assert.Equal(t, "first", res.Items[1].Content)
	require.NotNil(t, res.Items[1].Owner)
	assert.True(t, res.Items[1].IsLiked)
	assert.False(t, res.Items[0].IsLiked)
}

func TestSubscriptionFeeds(t *testing.T) {
	e := newEnv(t)
	alice := e.user("alice")
	bob := e.user("bob")
	carol := e.user("carol")
	e.video(bob.ID, "old", true, 0)
	newest := e.video(bob.ID, "new", true, 0)
	e.video(bob.ID, "hidden", false, 0)

	for _, ch := range []int64{bob.ID, carol.ID} {
		_, err := e.store.CreateSubscription(e.ctx, alice.ID, ch)
		require.NoError(t, err)
	}
	_, err := e.store.CreateSubscription(e.ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	channels, err := List[*ChannelItem](e.ctx, e.exec, e.build(SubscribedChannelList, Params{SubscriberID: alice.ID}))
	require.NoError(t, err)
	require.Len(t, channels.Items, 2)
	byName := map[string]*ChannelItem{}
	for _, c := range channels.Items {
		byName[c.UserName] = c
	}
	require.NotNil(t, byName["bob"].LatestVideo)
	assert.Equal(t, newest.ID, byName["bob"].LatestVideo.ID)
	assert.Nil(t, byName["carol"].LatestVideo)
	assert.Equal(t, int64(1), byName["bob"].SubscribersCount)

	subs, err := List[*SubscriberItem](e.ctx, e.exec, e.build(SubscriberList, Params{ChannelID: bob.ID, Viewer: bob.ID}))
	require.NoError(t, err)
	require.Len(t, subs.Items, 1)
	assert.Equal(t, alice.ID, subs.Items[0].ID)
	assert.True(t, subs.Items[0].IsSubscribed)
	assert.Equal(t, int64(1), subs.Items[0].SubscribersCount)
}

func TestPlaylistsAndStats(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	other := e.user("other")
	v1 := e.video(owner.ID, "a", true, 2)
	v2 := e.video(owner.ID, "b", false, 3)
	v3 := e.video(other.ID, "c", true, 1)
	require.NoError(t, e.store.AddToCounter(e.ctx, "videos", "likes_count", v1.ID, 4))
	_, err := e.store.CreateSubscription(e.ctx, other.ID, owner.ID)
	require.NoError(t, err)

	pl := &model.Playlist{OwnerID: owner.ID, Name: "mix", Description: "d"}
	require.NoError(t, e.store.CreatePlaylist(e.ctx, pl))
	for _, v := range []*model.Video{v1, v2, v3} {
		_, err := e.store.AddPlaylistVideo(e.ctx, pl.ID, v.ID)
		require.NoError(t, err)
	}

	lists, err := List[*PlaylistItem](e.ctx, e.exec, e.build(UserPlaylists, Params{UserID: owner.ID}))
	require.NoError(t, err)
	require.Len(t, lists.Items, 1)
	assert.Equal(t, int64(3), lists.Items[0].TotalVideos)
	assert.Equal(t, int64(6), lists.Items[0].TotalViews)

	// 其他用户看不到列表中 owner 的未发布视频
	videos, err := List[*VideoItem](e.ctx, e.exec, e.build(PlaylistVideos, Params{PlaylistID: pl.ID, Viewer: other.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), videos.TotalItems)
	assert.Equal(t, v1.ID, videos.Items[0].ID)

	stats, err := e.exec.Stats(e.ctx, e.build(ChannelStatsKind, Params{ChannelID: owner.ID}))
	require.NoError(t, err)
	assert.Equal(t, &ChannelStats{TotalSubscribers: 1, TotalLikes: 4, TotalViews: 5, TotalVideos: 2}, stats)
}

func TestUserTweets(t *testing.T) {
	e := newEnv(t)
	owner := e.user("owner")
	tw := &model.Tweet{OwnerID: owner.ID, Content: "hello"}
	require.NoError(t, e.store.CreateTweet(e.ctx, tw))

	res, err := List[*TweetItem](e.ctx, e.exec, e.build(UserTweets, Params{UserID: owner.ID}))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "hello", res.Items[0].Content)
	assert.Equal(t, "owner", res.Items[0].Owner.UserName)
}

func TestShapeMismatch(t *testing.T) {
	e := newEnv(t)
	_, err := e.exec.Run(e.ctx, e.build(VideoDetailKind, Params{VideoID: 1}))
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
	_, err = e.exec.One(e.ctx, e.build(GlobalVideos, Params{}))
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
}
