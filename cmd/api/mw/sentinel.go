package mw

import (
	"context"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/config"
	"MediaHub.com/pkg/errno"
)

// 需要限流的写接口
const (
	ResourceLike      = "like_action"
	ResourceComment   = "comment_create"
	ResourceSubscribe = "subscription_toggle"
)

var sentinelEnabled bool

// InitSentinel 为写接口加载 QPS 限流规则
func InitSentinel(cfg *config.Config) error {
	if !cfg.Sentinel.Enable || cfg.Sentinel.WriteQPS <= 0 {
		return nil
	}
	if err := sentinel.InitDefault(); err != nil {
		return errors.WithMessage(err, "init sentinel")
	}
	rules := make([]*flow.Rule, 0, 3)
	for _, res := range []string{ResourceLike, ResourceComment, ResourceSubscribe} {
		rules = append(rules, &flow.Rule{
			Resource:               res,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              cfg.Sentinel.WriteQPS,
			StatIntervalInMs:       1000,
		})
	}
	if _, err := flow.LoadRules(rules); err != nil {
		return errors.WithMessage(err, "load sentinel flow rules")
	}
	sentinelEnabled = true
	return nil
}

// Limit 超过阈值时直接返回 429
func Limit(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if !sentinelEnabled {
			c.Next(ctx)
			return
		}
		e, blocked := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blocked != nil {
			hlog.CtxWarnf(ctx, "request blocked by flow control: resource=%s", resource)
			common.SendResponse(c, errno.TooManyRequestsErr, nil)
			c.Abort()
			return
		}
		defer e.Exit()
		c.Next(ctx)
	}
}
