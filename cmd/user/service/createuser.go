package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/oss"
	"MediaHub.com/pkg/utils"
)

type CreateUserRequest struct {
	UserName string
	Email    string
	FullName string
	Password string
	// 可选的本地临时文件
	AvatarPath     string
	CoverImagePath string
}

type CreateUserService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewCreateUserService(ctx context.Context, deps *app.Deps) *CreateUserService {
	return &CreateUserService{ctx: ctx, deps: deps}
}

// validatePasswordStrength 验证密码强度
func validatePasswordStrength(password string) error {
	if len(password) < 6 {
		return errno.InvalidArgumentErr.WithMessage("Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return errno.InvalidArgumentErr.WithMessage("Password must be at most 72 characters")
	}
	return nil
}

// CreateUser 用户名和邮箱规范化后注册，头像和封面上传失败不影响注册
func (v *CreateUserService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	username := utils.NormalizeIdentity(req.UserName)
	email := utils.NormalizeIdentity(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	if username == "" || email == "" || fullName == "" || req.Password == "" {
		removeTemp(req.AvatarPath, req.CoverImagePath)
		return nil, errno.InvalidArgumentErr.WithMessage("All fields are required")
	}
	if !utils.IsValidEmail(email) {
		removeTemp(req.AvatarPath, req.CoverImagePath)
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid email")
	}
	if err := validatePasswordStrength(req.Password); err != nil {
		removeTemp(req.AvatarPath, req.CoverImagePath)
		return nil, err
	}

	exists, err := v.deps.Store.UserExistsByNameOrEmail(v.ctx, username, email)
	if err != nil {
		removeTemp(req.AvatarPath, req.CoverImagePath)
		return nil, errors.WithMessage(err, "dao.UserExistsByNameOrEmail failed")
	}
	if exists {
		removeTemp(req.AvatarPath, req.CoverImagePath)
		return nil, errno.ConflictErr.WithMessage("User with email or username already exists")
	}

	passWord, err := utils.Crypt(req.Password)
	if err != nil {
		removeTemp(req.AvatarPath, req.CoverImagePath)
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}

	user := &model.User{UserName: username, Email: email, FullName: fullName, Password: passWord}
	var uploaded []*oss.Blob
	if b := v.upload(req.AvatarPath, "avatar"); b != nil {
		user.AvatarUrl, user.AvatarBlobID = b.URL, b.ID
		uploaded = append(uploaded, b)
	}
	if b := v.upload(req.CoverImagePath, "cover image"); b != nil {
		user.CoverImageUrl, user.CoverBlobID = b.URL, b.ID
		uploaded = append(uploaded, b)
	}

	if err = v.deps.Store.CreateUser(v.ctx, user); err != nil {
		for _, b := range uploaded {
			v.deps.Blobs.Delete(v.ctx, b.ID)
		}
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	return user, nil
}

func (v *CreateUserService) upload(path, what string) *oss.Blob {
	if path == "" {
		return nil
	}
	b := v.deps.Blobs.Put(v.ctx, path)
	if b == nil {
		hlog.CtxWarnf(v.ctx, "upload %s failed, registering without it", what)
	}
	return b
}
