package handlers

import (
	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
)

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	common.SendResponse(c, err, data)
}

type RegisterParam struct {
	UserName string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	FullName string `form:"fullName" json:"fullName"`
	Password string `form:"password" json:"password"`
}

type UpdateParam struct {
	FullName string `form:"fullName" json:"fullName"`
	Email    string `form:"email" json:"email"`
}

type ChangePasswordParam struct {
	OldPassword     string `form:"oldPassword" json:"oldPassword"`
	NewPassword     string `form:"newPassword" json:"newPassword"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

type PageParam struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}
