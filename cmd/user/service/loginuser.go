package service

import (
	"context"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/utils"
)

type LoginUserRequest struct {
	// 用户名或邮箱
	Identity string
	Password string
}

type LoginUserService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewLoginUserService(ctx context.Context, deps *app.Deps) *LoginUserService {
	return &LoginUserService{ctx: ctx, deps: deps}
}

// LoginUser 校验密码，令牌由 jwt 中间件签发
func (v *LoginUserService) LoginUser(req *LoginUserRequest) (*model.User, error) {
	identity := utils.NormalizeIdentity(req.Identity)
	if identity == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("username or email is required")
	}
	user, err := v.deps.Store.GetUserByIdentity(v.ctx, identity)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, errno.AuthorizationFailedErr.WithMessage("Invalid user credentials")
	}
	return user, nil
}
