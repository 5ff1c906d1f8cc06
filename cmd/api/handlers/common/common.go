// Package common 保存各个 handler 包共用的响应封装和请求解析
package common

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	mhapp "MediaHub.com/pkg/app"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/utils"
)

type Response struct {
	StatusCode int64       `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Success    bool        `json:"success"`
}

// SendResponse HTTP 状态码与错误码一致
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	if Err.ErrCode >= errno.ServiceErrCode {
		hlog.Errorf("request %s failed: %v", c.Request.URI().Path(), err)
	}
	if !errno.IsSuccess(Err.ErrCode) {
		data = nil
	}
	c.JSON(int(Err.ErrCode), Response{
		StatusCode: Err.ErrCode,
		Message:    Err.ErrMsg,
		Data:       data,
		Success:    errno.IsSuccess(Err.ErrCode),
	})
}

var deps *mhapp.Deps

// Init 由 main 在注册路由前调用
func Init(d *mhapp.Deps) {
	deps = d
}

func Deps() *mhapp.Deps {
	return deps
}

// CurrentUserID 读取 jwt 中间件写入的用户 ID
func CurrentUserID(ctx context.Context, c *app.RequestContext) (int64, error) {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return 0, errno.AuthorizationFailedErr.WithMessage("Unauthorized request")
	}
	id := utils.Transfer(v)
	if id <= 0 {
		return 0, errno.AuthorizationFailedErr.WithMessage("Invalid access token")
	}
	return id, nil
}

// PathID 解析路径参数中的 ID
func PathID(c *app.RequestContext, name string) (int64, error) {
	return utils.ParseID(c.Param(name), name)
}

// SaveUpload 把 multipart 文件保存到临时目录，字段不存在时返回空路径
func SaveUpload(c *app.RequestContext, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	dir := deps.Config.Server.UploadTempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "Failed to create upload dir")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", errors.WithMessage(err, "Failed to save "+field)
	}
	return path, nil
}
