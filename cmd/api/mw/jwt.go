package mw

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/model"
	"MediaHub.com/cmd/user/service"
	"MediaHub.com/config"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/utils"
)

const (
	loginUserKey = "login_user"
	loginErrKey  = "login_err"
)

var AccessTokenJwtMiddleware *jwt.HertzJWTMiddleware

type loginParam struct {
	UserName string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginData struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"accessToken"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}

// AccessTokenJwtInit 初始化 jwt 中间件，登录时通过用户服务校验密码
func AccessTokenJwtInit(cfg *config.Config) error {
	var err error
	AccessTokenJwtMiddleware, err = jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         cfg.Jwt.Realm,
		Key:           []byte(cfg.Jwt.Secret),
		Timeout:       config.Duration(cfg.Jwt.Timeout, 24*time.Hour),
		MaxRefresh:    config.Duration(cfg.Jwt.MaxRefresh, 7*24*time.Hour),
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, query: token, cookie: accessToken",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if u, ok := data.(*model.User); ok {
				return jwt.MapClaims{constants.IdentityKey: utils.FormatID(u.ID)}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			return utils.Transfer(claims[constants.IdentityKey])
		},
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var req loginParam
			if err := c.Bind(&req); err != nil {
				c.Set(loginErrKey, errno.ErrBind)
				return nil, errno.ErrBind
			}
			identity := req.UserName
			if identity == "" {
				identity = req.Email
			}
			user, err := service.NewLoginUserService(ctx, common.Deps()).LoginUser(&service.LoginUserRequest{
				Identity: identity,
				Password: req.Password,
			})
			if err != nil {
				c.Set(loginErrKey, err)
				return nil, err
			}
			c.Set(loginUserKey, user)
			return user, nil
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			v, _ := c.Get(loginUserKey)
			user, _ := v.(*model.User)
			common.SendResponse(c, errno.Success.WithMessage("User logged in successfully"), &loginData{
				User: user, AccessToken: token, ExpiresAt: expire,
			})
		},
		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			common.SendResponse(c, errno.Success.WithMessage("Access token refreshed"), &loginData{AccessToken: token, ExpiresAt: expire})
		},
		LogoutResponse: func(ctx context.Context, c *app.RequestContext, code int) {
			common.SendResponse(c, errno.Success.WithMessage("User logged out"), struct{}{})
		},
		HTTPStatusMessageFunc: func(e error, ctx context.Context, c *app.RequestContext) string {
			// jwt 库的错误信息（例如 token is expired）直接返回
			var Err errno.ErrNo
			if errors.As(e, &Err) {
				return Err.ErrMsg
			}
			return e.Error()
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxInfof(ctx, "unauthorized request %s: %s", c.Request.URI().Path(), message)
			// 登录失败时保留服务返回的错误码，例如用户不存在是 404
			if v, ok := c.Get(loginErrKey); ok {
				common.SendResponse(c, v.(error), nil)
				return
			}
			common.SendResponse(c, errno.AuthorizationFailedErr.WithMessage(message), nil)
		},
	})
	return err
}

func Login(ctx context.Context, c *app.RequestContext) {
	AccessTokenJwtMiddleware.LoginHandler(ctx, c)
}

// Auth 要求请求携带有效的访问令牌
func Auth() app.HandlerFunc {
	return AccessTokenJwtMiddleware.MiddlewareFunc()
}

// ViewerID 可选登录的接口使用，没有或无效的令牌视为匿名用户 0
func ViewerID(ctx context.Context, c *app.RequestContext) int64 {
	if id, err := common.CurrentUserID(ctx, c); err == nil {
		return id
	}
	claims, err := AccessTokenJwtMiddleware.GetClaimsFromJWT(ctx, c)
	if err != nil {
		return 0
	}
	return utils.Transfer(claims[constants.IdentityKey])
}
