package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/utils"
)

type ChangePasswordRequest struct {
	UserID          int64
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

type ChangePasswordService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewChangePasswordService(ctx context.Context, deps *app.Deps) *ChangePasswordService {
	return &ChangePasswordService{ctx: ctx, deps: deps}
}

func (s *ChangePasswordService) ChangePassword(req *ChangePasswordRequest) error {
	// 1. 参数验证
	if req.OldPassword == "" || req.NewPassword == "" {
		return errno.InvalidArgumentErr.WithMessage("oldPassword and newPassword are required")
	}
	if req.ConfirmPassword != "" && req.NewPassword != req.ConfirmPassword {
		return errno.InvalidArgumentErr.WithMessage("New password and confirmation do not match")
	}
	if err := validatePasswordStrength(req.NewPassword); err != nil {
		return err
	}

	// 2. 验证旧密码
	user, err := s.deps.Store.GetUserByID(s.ctx, req.UserID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return errno.InvalidArgumentErr.WithMessage("Invalid old password")
	}

	// 3. 更新密码
	hashed, err := utils.Crypt(req.NewPassword)
	if err != nil {
		return errors.WithMessage(err, "Password fail to crypt")
	}
	if err := s.deps.Store.UpdateUser(s.ctx, req.UserID, map[string]interface{}{"password": hashed}); err != nil {
		return errors.WithMessage(err, "dao.UpdateUser failed")
	}
	hlog.CtxInfof(s.ctx, "password changed: user_id=%d", req.UserID)
	return nil
}
