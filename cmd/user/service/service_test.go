package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app/apptest"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/oss"
)

func register(t *testing.T, env *apptest.Env, name string) *model.User {
	u, err := NewCreateUserService(context.Background(), env.Deps).CreateUser(&CreateUserRequest{
		UserName: name, Email: name + "@example.com", FullName: "Full " + name, Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func tempFile(t *testing.T, name string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("img"), 0o644))
	return p
}

func TestRegisterAndLogin(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	u := register(t, env, "Alice")
	assert.Equal(t, "alice", u.UserName)
	assert.NotEqual(t, "secret123", u.Password)

	svc := NewCreateUserService(ctx, env.Deps)
	_, err := svc.CreateUser(&CreateUserRequest{UserName: "ALICE", Email: "other@example.com", FullName: "x", Password: "secret123"})
	assert.True(t, errors.Is(err, errno.ConflictErr))
	_, err = svc.CreateUser(&CreateUserRequest{UserName: "bob", Email: "not-an-email", FullName: "x", Password: "secret123"})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
	_, err = svc.CreateUser(&CreateUserRequest{UserName: "bob", Email: "bob@example.com", FullName: " ", Password: "secret123"})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))

	login := NewLoginUserService(ctx, env.Deps)
	got, err := login.LoginUser(&LoginUserRequest{Identity: "Alice@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = login.LoginUser(&LoginUserRequest{Identity: "alice", Password: "wrong"})
	assert.True(t, errors.Is(err, errno.AuthorizationFailedErr))
	_, err = login.LoginUser(&LoginUserRequest{Identity: "nobody", Password: "secret123"})
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = login.LoginUser(&LoginUserRequest{Password: "secret123"})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
}

func TestRegisterWithAvatar(t *testing.T) {
	env := apptest.New(t)
	avatar := tempFile(t, "a.png")
	env.Blobs.On("Put", mock.Anything, avatar).Return(&oss.Blob{URL: "http://cdn/picture/a.png", ID: "picture/a.png"}).Once()

	u, err := NewCreateUserService(context.Background(), env.Deps).CreateUser(&CreateUserRequest{
		UserName: "carol", Email: "carol@example.com", FullName: "Carol", Password: "secret123", AvatarPath: avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/picture/a.png", u.AvatarUrl)
	assert.Empty(t, u.CoverImageUrl)
	env.Blobs.AssertExpectations(t)
}

func TestChangePassword(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	u := register(t, env, "dave")
	svc := NewChangePasswordService(ctx, env.Deps)

	err := svc.ChangePassword(&ChangePasswordRequest{UserID: u.ID, OldPassword: "bad-old", NewPassword: "newsecret"})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
	err = svc.ChangePassword(&ChangePasswordRequest{UserID: u.ID, OldPassword: "secret123", NewPassword: "abc"})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))

	require.NoError(t, svc.ChangePassword(&ChangePasswordRequest{UserID: u.ID, OldPassword: "secret123", NewPassword: "newsecret"}))
	_, err = NewLoginUserService(ctx, env.Deps).LoginUser(&LoginUserRequest{Identity: "dave", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestUpdateUserAndImage(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	u := register(t, env, "erin")
	register(t, env, "frank")
	svc := NewUpdateUserService(ctx, env.Deps)

	_, err := svc.UpdateUser(&UpdateUserRequest{UserID: u.ID, FullName: "Erin", Email: "frank@example.com"})
	assert.True(t, errors.Is(err, errno.ConflictErr))
	updated, err := svc.UpdateUser(&UpdateUserRequest{UserID: u.ID, FullName: "Erin E", Email: "Erin2@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "erin2@example.com", updated.Email)

	first := tempFile(t, "1.png")
	second := tempFile(t, "2.png")
	env.Blobs.On("Put", mock.Anything, first).Return(&oss.Blob{URL: "u1", ID: "picture/1.png"}).Once()
	env.Blobs.On("Put", mock.Anything, second).Return(&oss.Blob{URL: "u2", ID: "picture/2.png"}).Once()
	env.Blobs.On("Delete", mock.Anything, "picture/1.png").Return(true).Once()

	_, err = svc.UpdateImage(&UpdateImageRequest{UserID: u.ID, Kind: ImageCover, Path: first})
	require.NoError(t, err)
	got, err := svc.UpdateImage(&UpdateImageRequest{UserID: u.ID, Kind: ImageCover, Path: second})
	require.NoError(t, err)
	assert.Equal(t, "u2", got.CoverImageUrl)
	env.Blobs.AssertExpectations(t)

	_, err = svc.UpdateImage(&UpdateImageRequest{UserID: u.ID, Kind: "banner", Path: second})
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
}

func TestChannelProfileAndWatchHistory(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	owner := register(t, env, "owner")
	viewer := register(t, env, "viewer")
	_, err := env.Store.CreateSubscription(ctx, viewer.ID, owner.ID)
	require.NoError(t, err)

	info := NewUserInfoService(ctx, env.Deps)
	profile, err := info.ChannelProfile(viewer.ID, "OWNER")
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.Zero(t, profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	anon, err := info.ChannelProfile(0, "owner")
	require.NoError(t, err)
	assert.False(t, anon.IsSubscribed)

	_, err = info.ChannelProfile(viewer.ID, "ghost")
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	first := &model.Video{OwnerID: owner.ID, Title: "a", VideoUrl: "u", ThumbnailUrl: "t", IsPublished: true}
	require.NoError(t, env.Store.CreateVideo(ctx, first))
	second := &model.Video{OwnerID: owner.ID, Title: "b", VideoUrl: "u", ThumbnailUrl: "t", IsPublished: true}
	require.NoError(t, env.Store.CreateVideo(ctx, second))
	for _, v := range []*model.Video{first, second, first} {
		_, err := env.Store.AddWatchHistory(ctx, viewer.ID, v.ID)
		require.NoError(t, err)
	}
	_, err = env.Store.DeleteVideo(ctx, second.ID)
	require.NoError(t, err)

	history, err := info.WatchHistory(&WatchHistoryRequest{UserID: viewer.ID})
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, first.ID, history.Items[0].ID)
	assert.Equal(t, int64(1), history.TotalItems)
}
