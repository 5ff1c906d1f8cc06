package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediaHub.com/cmd/model"
	"MediaHub.com/config"
	"MediaHub.com/pkg/dal/db/dbtest"
)

func TestSQLSearcher(t *testing.T) {
	s := dbtest.New(t)
	ctx := context.Background()
	cat := &model.Video{OwnerID: 1, Title: "Funny cats", Description: "compilation", VideoUrl: "u", ThumbnailUrl: "t"}
	dog := &model.Video{OwnerID: 1, Title: "Dogs", Description: "100% good boys", VideoUrl: "u", ThumbnailUrl: "t"}
	require.NoError(t, s.CreateVideo(ctx, cat))
	require.NoError(t, s.CreateVideo(ctx, dog))

	searcher := NewSQLSearcher(s)
	ids, err := searcher.SearchVideoIDs(ctx, "cats", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{cat.ID}, ids)

	ids, err = searcher.SearchVideoIDs(ctx, "100%", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{dog.ID}, ids)

	ids, err = searcher.SearchVideoIDs(ctx, "%", 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{dog.ID}, ids)
}

func TestNewFallsBackToSQL(t *testing.T) {
	s := dbtest.New(t)
	_, ok := New(&config.Config{}, s).(*SQLSearcher)
	assert.True(t, ok)
}
