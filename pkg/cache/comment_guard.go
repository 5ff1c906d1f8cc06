package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"

	"MediaHub.com/config"
)

// 缓存键名常量
const (
	// 用户评论频率计数
	CommentRateKey = "comment:rate:%d"
	// 同一用户同一视频相同内容的去重标记
	CommentDuplicateKey = "comment:dup:%d:%d:%s"
)

// CommentGuard 评论频率限制与重复内容检测，Redis 不可用时一律放行
type CommentGuard struct {
	client    *redis.Client
	limit     int64
	window    time.Duration
	dupWindow time.Duration
}

func NewCommentGuard(client *redis.Client, cfg config.Comment) *CommentGuard {
	g := &CommentGuard{
		client:    client,
		limit:     int64(cfg.RateLimit),
		window:    time.Duration(cfg.RateLimitWindowS) * time.Second,
		dupWindow: time.Duration(cfg.DuplicateWindowS) * time.Second,
	}
	if g.window <= 0 {
		g.window = time.Minute
	}
	if g.dupWindow <= 0 {
		g.dupWindow = 5 * time.Minute
	}
	return g
}

// Allow 当前窗口内评论次数是否未超过上限
func (g *CommentGuard) Allow(ctx context.Context, userId int64) bool {
	if g == nil || g.client == nil || g.limit <= 0 {
		return true
	}
	key := fmt.Sprintf(CommentRateKey, userId)
	n, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		hlog.CtxWarnf(ctx, "comment rate limit check failed, allowing: user_id=%d err=%v", userId, err)
		return true
	}
	if n == 1 {
		if err = g.client.Expire(ctx, key, g.window).Err(); err != nil {
			hlog.CtxWarnf(ctx, "set comment rate window failed: user_id=%d err=%v", userId, err)
		}
	}
	return n <= g.limit
}

// FirstSeen 窗口内首次出现的内容返回 true，重复提交返回 false
func (g *CommentGuard) FirstSeen(ctx context.Context, userId, videoId int64, content string) bool {
	if g == nil || g.client == nil {
		return true
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(content))))
	key := fmt.Sprintf(CommentDuplicateKey, userId, videoId, hex.EncodeToString(sum[:]))
	ok, err := g.client.SetNX(ctx, key, 1, g.dupWindow).Result()
	if err != nil {
		if err != redis.Nil {
			hlog.CtxWarnf(ctx, "comment duplicate check failed, allowing: user_id=%d err=%v", userId, err)
		}
		return true
	}
	return ok
}
