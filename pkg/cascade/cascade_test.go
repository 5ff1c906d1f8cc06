package cascade

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/counter"
	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/dal/db/dbtest"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/oss/osstest"
)

type fixture struct {
	store *db.Store
	blobs *osstest.MockBlobStore
	orch  *Orchestrator
}

func setup(t *testing.T, transactional bool) *fixture {
	s := dbtest.New(t)
	blobs := &osstest.MockBlobStore{}
	return &fixture{
		store: s,
		blobs: blobs,
		orch:  New(s, blobs, counter.NewManager(s, nil, 0), transactional),
	}
}

func (f *fixture) video(t *testing.T) *model.Video {
	v := &model.Video{OwnerID: 1, Title: "t", VideoUrl: "u", ThumbnailUrl: "th",
		VideoBlobID: "video/a.mp4", ThumbnailBlobID: "picture/a.jpg", IsPublished: true}
	require.NoError(t, f.store.CreateVideo(context.Background(), v))
	return v
}

func (f *fixture) comment(t *testing.T, videoId int64) *model.Comment {
	c := &model.Comment{VideoID: videoId, OwnerID: 2, Content: "nice"}
	require.NoError(t, f.store.CreateComment(context.Background(), c))
	require.NoError(t, f.store.AddToCounter(context.Background(), "videos", "comments_count", videoId, 1))
	return c
}

func (f *fixture) like(t *testing.T, like *model.Like) {
	created, err := f.store.CreateLike(context.Background(), like)
	require.NoError(t, err)
	require.True(t, created)
}

func TestDeleteVideoRemovesCommentsAndLikes(t *testing.T) {
	for _, transactional := range []bool{true, false} {
		f := setup(t, transactional)
		ctx := context.Background()
		v := f.video(t)
		keep := f.video(t)
		c1 := f.comment(t, v.ID)
		c2 := f.comment(t, keep.ID)
		f.like(t, &model.Like{VideoID: &v.ID, LikedBy: 3})
		f.like(t, &model.Like{CommentID: &c1.ID, LikedBy: 3})
		f.like(t, &model.Like{CommentID: &c2.ID, LikedBy: 3})

		f.blobs.On("Delete", mock.Anything, "video/a.mp4").Return(true).Once()
		f.blobs.On("Delete", mock.Anything, "picture/a.jpg").Return(true).Once()

		require.NoError(t, f.orch.DeleteVideo(ctx, v.ID))
		f.blobs.AssertExpectations(t)

		exists, err := f.store.VideoExists(ctx, v.ID)
		require.NoError(t, err)
		assert.False(t, exists)
		n, err := f.store.CountComments(ctx, v.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
		n, err = f.store.CountLikes(ctx, constants.LikeTargetVideo, v.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
		n, err = f.store.CountLikes(ctx, constants.LikeTargetComment, c1.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		// 其他视频的数据不受影响
		n, err = f.store.CountLikes(ctx, constants.LikeTargetComment, c2.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}
}

func TestDeleteVideoContinuesWhenBlobDeleteFails(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()
	v := f.video(t)
	f.blobs.On("Delete", mock.Anything, mock.Anything).Return(false)

	require.NoError(t, f.orch.DeleteVideo(ctx, v.ID))
	exists, err := f.store.VideoExists(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteVideoNotFound(t *testing.T) {
	f := setup(t, true)
	err := f.orch.DeleteVideo(context.Background(), 12345)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	f.blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteVideoIgnoresCallerCancellation(t *testing.T) {
	f := setup(t, true)
	v := f.video(t)
	f.blobs.On("Delete", mock.Anything, mock.Anything).Return(true)

	ctx, cancel := context.WithCancel(context.Background())
	got, err := f.store.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	cancel()
	require.NoError(t, f.orch.run(ctx, func(ctx context.Context, s *db.Store) error {
		_, err := s.DeleteVideo(ctx, got.ID)
		return err
	}))

	exists, err := f.store.VideoExists(context.Background(), v.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteCommentDecrementsVideo(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()
	v := f.video(t)
	c := f.comment(t, v.ID)
	f.like(t, &model.Like{CommentID: &c.ID, LikedBy: 9})

	require.NoError(t, f.orch.DeleteComment(ctx, c.ID))

	got, err := f.store.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CommentsCount)
	n, err := f.store.CountLikes(ctx, constants.LikeTargetComment, c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	err = f.orch.DeleteComment(ctx, c.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestDeleteTweet(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()
	tw := &model.Tweet{OwnerID: 1, Content: "hi"}
	require.NoError(t, f.store.CreateTweet(ctx, tw))
	f.like(t, &model.Like{TweetID: &tw.ID, LikedBy: 4})

	require.NoError(t, f.orch.DeleteTweet(ctx, tw.ID))
	n, err := f.store.CountLikes(ctx, constants.LikeTargetTweet, tw.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
