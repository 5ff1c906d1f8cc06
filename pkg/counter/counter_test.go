package counter

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/dal/db/dbtest"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/mq"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) AddToCounter(ctx context.Context, table, column string, id, delta int64) error {
	return m.Called(table, column, id, delta).Error(0)
}

func (m *mockStore) RecomputeCounter(ctx context.Context, table, column, sourceTable, sourceColumn string, id int64) error {
	return m.Called(table, column, sourceTable, sourceColumn, id).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishReconcile(ctx context.Context, msg *mq.ReconcileMessage) error {
	return m.Called(msg).Error(0)
}

func TestApplyDeltaUnknownCounter(t *testing.T) {
	m := NewManager(&mockStore{}, nil, 0)
	err := m.ApplyDelta(context.Background(), Comment, CommentsCount, 1, 1)
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
	err = m.ApplyDelta(context.Background(), Target("playlist"), LikesCount, 1, 1)
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
}

func TestApplyDeltaRetriesOnce(t *testing.T) {
	store := &mockStore{}
	store.On("AddToCounter", "videos", "likes_count", int64(5), int64(1)).Return(errors.New("deadlock")).Once()
	store.On("AddToCounter", "videos", "likes_count", int64(5), int64(1)).Return(nil).Once()

	m := NewManager(store, nil, 0)
	require.NoError(t, m.ApplyDelta(context.Background(), Video, LikesCount, 5, 1))
	store.AssertNumberOfCalls(t, "AddToCounter", 2)
}

func TestApplyDeltaRecordsAfterRetry(t *testing.T) {
	store := &mockStore{}
	store.On("AddToCounter", "comments", "likes_count", int64(8), int64(-1)).Return(errors.New("conn reset"))

	var recorded []*model.ReconcileTask
	var mu sync.Mutex
	rec := RecorderFunc(func(_ context.Context, task *model.ReconcileTask) error {
		mu.Lock()
		defer mu.Unlock()
		recorded = append(recorded, task)
		return nil
	})
	pub := &mockPublisher{}
	pub.On("PublishReconcile", mock.MatchedBy(func(msg *mq.ReconcileMessage) bool {
		return msg.Entity == "comment" && msg.TargetID == 8 && msg.Delta == -1
	})).Return(nil).Once()

	m := NewManager(store, Chain(rec, QueueRecorder(pub)), 0)
	err := m.ApplyDelta(context.Background(), Comment, LikesCount, 8, -1)
	assert.True(t, errors.Is(err, errno.DependencyFailureErr))
	store.AssertNumberOfCalls(t, "AddToCounter", 2)
	pub.AssertExpectations(t)
	require.Len(t, recorded, 1)
	assert.Equal(t, "likesCount", recorded[0].Counter)
}

func TestCountersNeverNegative(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	v := &model.Video{OwnerID: 1, Title: "t", VideoUrl: "u", ThumbnailUrl: "th"}
	require.NoError(t, s.CreateVideo(ctx, v))

	m := NewManager(s, TableRecorder(s), 0)
	for _, d := range []int64{-1, 1, -1, -1, 1, 1, -1} {
		require.NoError(t, m.ApplyDelta(ctx, Video, CommentsCount, v.ID, d))
		got, err := s.GetCounter(ctx, "videos", "comments_count", v.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, int64(0))
	}
	got, err := s.GetCounter(ctx, "videos", "comments_count", v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRecompute(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	tw := &model.Tweet{OwnerID: 1, Content: "hello"}
	require.NoError(t, s.CreateTweet(ctx, tw))
	_, err := s.CreateLike(ctx, &model.Like{TweetID: &tw.ID, LikedBy: 2})
	require.NoError(t, err)

	m := NewManager(s, nil, 0)
	require.NoError(t, m.ApplyDelta(ctx, Tweet, LikesCount, tw.ID, 5))
	require.NoError(t, m.Recompute(ctx, Tweet, LikesCount, tw.ID))
	got, err := s.GetCounter(ctx, "tweets", "likes_count", tw.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
