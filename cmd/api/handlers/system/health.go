package handlers

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"MediaHub.com/cmd/api/handlers/common"
	"MediaHub.com/pkg/errno"
)

type HealthStatus struct {
	Status     string  `json:"status"`
	Database   string  `json:"database"`
	Redis      string  `json:"redis"`
	CPUPercent float64 `json:"cpuPercent"`
	MemPercent float64 `json:"memPercent"`
}

// HealthCheck 数据库不可用时返回 424，redis 只作为降级依赖展示状态
func HealthCheck(ctx context.Context, c *app.RequestContext) {
	deps := common.Deps()
	status := &HealthStatus{Status: "ok", Database: "up", Redis: "disabled"}

	if err := deps.Store.Ping(ctx); err != nil {
		hlog.CtxErrorf(ctx, "health: database ping failed: %v", err)
		status.Status = "degraded"
		status.Database = "down"
	}
	if deps.Redis != nil {
		rctx, cancel := context.WithTimeout(ctx, time.Second)
		if err := deps.Redis.Ping(rctx).Err(); err != nil {
			status.Redis = "down"
		} else {
			status.Redis = "up"
		}
		cancel()
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.MemPercent = vm.UsedPercent
	}

	if status.Database == "down" {
		common.SendResponse(c, errno.DependencyFailureErr.WithMessage("Database is unavailable"), nil)
		return
	}
	common.SendResponse(c, errno.Success.WithMessage("Health check passed"), status)
}
