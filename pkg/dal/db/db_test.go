package db_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/dal/db/dbtest"
	"MediaHub.com/pkg/errno"
)

func newUser(t *testing.T, s *db.Store, name string) *model.User {
	u := &model.User{UserName: name, Email: name + "@example.com", FullName: name, Password: "x"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func newVideo(t *testing.T, s *db.Store, owner int64) *model.Video {
	v := &model.Video{OwnerID: owner, Title: "t", VideoUrl: "u", ThumbnailUrl: "th", IsPublished: true}
	require.NoError(t, s.CreateVideo(context.Background(), v))
	return v
}

func TestCreateUserConflict(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	u := newUser(t, s, "alice")
	assert.NotZero(t, u.ID)

	err := s.CreateUser(ctx, &model.User{UserName: "alice", Email: "other@example.com", FullName: "a", Password: "x"})
	assert.True(t, errors.Is(err, errno.ConflictErr))

	got, err := s.GetUserByIdentity(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByID(ctx, 42)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestCreateLikeIsConditional(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	u := newUser(t, s, "bob")
	v := newVideo(t, s, u.ID)

	created, err := s.CreateLike(ctx, &model.Like{VideoID: &v.ID, LikedBy: u.ID})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.CreateLike(ctx, &model.Like{VideoID: &v.ID, LikedBy: u.ID})
	require.NoError(t, err)
	assert.False(t, created)

	n, err := s.CountLikes(ctx, constants.LikeTargetVideo, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.CreateLike(ctx, &model.Like{LikedBy: u.ID})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))

	deleted, err := s.DeleteLike(ctx, u.ID, constants.LikeTargetVideo, v.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteLike(ctx, u.ID, constants.LikeTargetVideo, v.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAddToCounterClampsAtZero(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	v := newVideo(t, s, 1)

	require.NoError(t, s.AddToCounter(ctx, "videos", "likes_count", v.ID, 2))
	require.NoError(t, s.AddToCounter(ctx, "videos", "likes_count", v.ID, -5))
	got, err := s.GetCounter(ctx, "videos", "likes_count", v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	require.NoError(t, s.AddToCounter(ctx, "videos", "likes_count", v.ID, 1))
	got, err = s.GetCounter(ctx, "videos", "likes_count", v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRecomputeCounter(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	v := newVideo(t, s, 1)
	for _, uid := range []int64{10, 11, 12} {
		uid := uid
		_, err := s.CreateLike(ctx, &model.Like{VideoID: &v.ID, LikedBy: uid})
		require.NoError(t, err)
	}
	require.NoError(t, s.RecomputeCounter(ctx, "videos", "likes_count", "likes", "video_id", v.ID))
	got, err := s.GetCounter(ctx, "videos", "likes_count", v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestDeleteLikesOfVideoComments(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	v := newVideo(t, s, 1)
	other := newVideo(t, s, 1)
	c1 := &model.Comment{VideoID: v.ID, OwnerID: 1, Content: "hi"}
	c2 := &model.Comment{VideoID: other.ID, OwnerID: 1, Content: "hey"}
	require.NoError(t, s.CreateComment(ctx, c1))
	require.NoError(t, s.CreateComment(ctx, c2))
	_, err := s.CreateLike(ctx, &model.Like{CommentID: &c1.ID, LikedBy: 5})
	require.NoError(t, err)
	_, err = s.CreateLike(ctx, &model.Like{CommentID: &c2.ID, LikedBy: 5})
	require.NoError(t, err)

	n, err := s.DeleteLikesOfVideoComments(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := s.CountLikes(ctx, constants.LikeTargetComment, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}

func TestWatchHistoryAndPlaylistAreSets(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	v := newVideo(t, s, 1)

	added, err := s.AddWatchHistory(ctx, 7, v.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = s.AddWatchHistory(ctx, 7, v.ID)
	require.NoError(t, err)
	assert.False(t, added)

	p := &model.Playlist{OwnerID: 7, Name: "n", Description: "d"}
	require.NoError(t, s.CreatePlaylist(ctx, p))
	added, err = s.AddPlaylistVideo(ctx, p.ID, v.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = s.AddPlaylistVideo(ctx, p.ID, v.ID)
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, s.DeletePlaylist(ctx, p.ID))
	removed, err := s.RemovePlaylistVideo(ctx, p.ID, v.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTransactionRollback(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	v := newVideo(t, s, 1)

	err := s.Transaction(ctx, func(tx *db.Store) error {
		if _, err := tx.DeleteVideo(ctx, v.ID); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	exists, err := s.VideoExists(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReconcileTasks(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	require.NoError(t, s.CreateReconcileTask(ctx, &model.ReconcileTask{Entity: "video", TargetID: 9, Counter: "likesCount", Delta: 1}))
	require.NoError(t, s.CreateReconcileTask(ctx, &model.ReconcileTask{Entity: "video", TargetID: 9, Counter: "likesCount", Delta: -1}))

	tasks, err := s.ListPendingReconcileTasks(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	n, err := s.ResolveReconcileTasks(ctx, "video", 9, "likesCount")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	tasks, err = s.ListPendingReconcileTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateVideoRejectsCounters(t *testing.T) {
	s := dbtest.New(t)
	v := newVideo(t, s, 1)
	err := s.UpdateVideo(context.Background(), v.ID, map[string]interface{}{"likes_count": 10})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
}
