package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/utils"
)

type UpdateUserRequest struct {
	UserID   int64
	FullName string
	Email    string
}

// 可以替换的两种用户图片
const (
	ImageAvatar = "avatar"
	ImageCover  = "cover"
)

type UpdateImageRequest struct {
	UserID int64
	Kind   string
	Path   string
}

type UpdateUserService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewUpdateUserService(ctx context.Context, deps *app.Deps) *UpdateUserService {
	return &UpdateUserService{ctx: ctx, deps: deps}
}

func (v *UpdateUserService) UpdateUser(req *UpdateUserRequest) (*model.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := utils.NormalizeIdentity(req.Email)
	if fullName == "" || email == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("All fields are required")
	}
	if !utils.IsValidEmail(email) {
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid email")
	}
	if err := v.deps.Store.UpdateUser(v.ctx, req.UserID, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	}); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateUser failed")
	}
	return v.deps.Store.GetUserByID(v.ctx, req.UserID)
}

// UpdateImage 新图片上传并写入记录之后才删除旧图片
func (v *UpdateUserService) UpdateImage(req *UpdateImageRequest) (*model.User, error) {
	var urlCol, blobCol string
	switch req.Kind {
	case ImageAvatar:
		urlCol, blobCol = "avatar_url", "avatar_blob_id"
	case ImageCover:
		urlCol, blobCol = "cover_image_url", "cover_blob_id"
	default:
		removeTemp(req.Path)
		return nil, errno.InvalidArgumentErr.WithMessage("unknown image kind " + req.Kind)
	}
	if req.Path == "" {
		return nil, errno.InvalidArgumentErr.WithMessage(req.Kind + " file is missing")
	}
	user, err := v.deps.Store.GetUserByID(v.ctx, req.UserID)
	if err != nil {
		removeTemp(req.Path)
		return nil, err
	}
	old := user.AvatarBlobID
	if req.Kind == ImageCover {
		old = user.CoverBlobID
	}

	blob := v.deps.Blobs.Put(v.ctx, req.Path)
	if blob == nil {
		return nil, errno.DependencyFailureErr.WithMessage("Error while uploading " + req.Kind)
	}
	if err := v.deps.Store.UpdateUser(v.ctx, req.UserID, map[string]interface{}{urlCol: blob.URL, blobCol: blob.ID}); err != nil {
		v.deps.Blobs.Delete(v.ctx, blob.ID)
		return nil, errors.WithMessage(err, "dao.UpdateUser failed")
	}
	if old != "" && !v.deps.Blobs.Delete(v.ctx, old) {
		hlog.CtxErrorf(v.ctx, "delete replaced %s failed: user_id=%d blob=%s", req.Kind, req.UserID, old)
	}
	return v.deps.Store.GetUserByID(v.ctx, req.UserID)
}
