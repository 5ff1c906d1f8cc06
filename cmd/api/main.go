package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
	"github.com/sirupsen/logrus"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/config"
	"MediaHub.com/config/pprof"
	mhapp "MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/logger"
	"MediaHub.com/pkg/tracer"
)

func Init(ctx context.Context) (*config.Config, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config failed: %v", err)
	}
	logger.Init(cfg.Log)

	var closer io.Closer
	if cfg.Jaeger.Enable {
		if closer, err = tracer.InitJaeger(cfg.Jaeger.ServiceName, cfg.Jaeger.AgentAddr); err != nil {
			hlog.Warnf("init jaeger failed, tracing disabled: %v", err)
		}
	}
	if cfg.Pprof.Enable {
		pprof.Load(cfg.Pprof.Addr)
	}

	deps, cleanup, err := mhapp.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("init dependencies failed: %v", err)
	}
	common.Init(deps)

	if err := mw.AccessTokenJwtInit(cfg); err != nil {
		logrus.Fatalf("init jwt failed: %v", err)
	}
	if err := mw.InitSentinel(cfg); err != nil {
		logrus.Fatalf("init sentinel failed: %v", err)
	}

	return cfg, func() {
		cleanup()
		if closer != nil {
			_ = closer.Close()
		}
	}
}

func main() {
	ctx := context.Background()
	cfg, cleanup := Init(ctx)
	defer cleanup()

	r := server.New(
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxBodySize),
		server.WithExitWaitTime(5*time.Second),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, common.Response{
				StatusCode: errno.ServiceErrCode,
				Message:    fmt.Sprintf("internal error: %v", err),
				Success:    false,
			})
		})))

	// 注册路由
	register(r)

	r.Spin()
}
