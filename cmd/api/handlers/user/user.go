package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/user/service"
	"MediaHub.com/pkg/errno"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var param RegisterParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	avatar, err := common.SaveUpload(c, "avatar")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	cover, err := common.SaveUpload(c, "coverImage")
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	user, err := service.NewCreateUserService(ctx, common.Deps()).CreateUser(&service.CreateUserRequest{
		UserName:       param.UserName,
		Email:          param.Email,
		FullName:       param.FullName,
		Password:       param.Password,
		AvatarPath:     avatar,
		CoverImagePath: cover,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.NewErrNo(201, "User registered successfully"), user)
}

func CurrentUser(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	user, err := service.NewUserInfoService(ctx, common.Deps()).CurrentUser(userId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("User fetched successfully"), user)
}

func ChannelProfile(ctx context.Context, c *app.RequestContext) {
	username := c.Param("username")
	if username == "" {
		SendResponse(c, errno.InvalidArgumentErr.WithMessage("username is missing"), nil)
		return
	}
	profile, err := service.NewUserInfoService(ctx, common.Deps()).ChannelProfile(mw.ViewerID(ctx, c), username)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("User channel fetched successfully"), profile)
}

func WatchHistory(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	resp, err := service.NewUserInfoService(ctx, common.Deps()).WatchHistory(&service.WatchHistoryRequest{
		UserID: userId, Page: param.Page, Limit: param.Limit,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Watch history fetched successfully"), resp)
}

func UpdateAccount(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param UpdateParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	user, err := service.NewUpdateUserService(ctx, common.Deps()).UpdateUser(&service.UpdateUserRequest{
		UserID: userId, FullName: param.FullName, Email: param.Email,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Account details updated successfully"), user)
}

func ChangePassword(ctx context.Context, c *app.RequestContext) {
	userId, err := common.CurrentUserID(ctx, c)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var param ChangePasswordParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.ErrBind, nil)
		return
	}
	if err := service.NewChangePasswordService(ctx, common.Deps()).ChangePassword(&service.ChangePasswordRequest{
		UserID:          userId,
		OldPassword:     param.OldPassword,
		NewPassword:     param.NewPassword,
		ConfirmPassword: param.ConfirmPassword,
	}); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success.WithMessage("Password changed successfully"), struct{}{})
}

// UpdateImage 头像和封面共用，field 是 multipart 字段名
func UpdateImage(kind, field string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		userId, err := common.CurrentUserID(ctx, c)
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		path, err := common.SaveUpload(c, field)
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		user, err := service.NewUpdateUserService(ctx, common.Deps()).UpdateImage(&service.UpdateImageRequest{
			UserID: userId, Kind: kind, Path: path,
		})
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		SendResponse(c, errno.Success.WithMessage("Image updated successfully"), user)
	}
}
