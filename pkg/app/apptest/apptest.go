// Package apptest 为服务层测试组装基于 SQLite、miniredis 和 mock 对象存储的依赖
package apptest

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"MediaHub.com/config"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/dal/db/dbtest"
	"MediaHub.com/pkg/oss/osstest"
	"MediaHub.com/pkg/search"
)

type Env struct {
	*app.Deps
	Blobs *osstest.MockBlobStore
	Redis *miniredis.Miniredis
}

func DefaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Pagination.DefaultLimit = 10
	cfg.Pagination.MaxLimit = 50
	cfg.Cascade.Transactional = true
	cfg.Counter.RetryBackoff = "1ms"
	cfg.Comment.MaxLength = 500
	cfg.Comment.RateLimit = 100
	cfg.Comment.RateLimitWindowS = 60
	cfg.Comment.DuplicateWindowS = 300
	return cfg
}

func New(t testing.TB) *Env {
	return NewWithConfig(t, DefaultConfig())
}

func NewWithConfig(t testing.TB, cfg *config.Config) *Env {
	store := dbtest.New(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	blobs := &osstest.MockBlobStore{}

	deps := app.Assemble(cfg, store, blobs, search.NewSQLSearcher(store), client, nil)
	return &Env{Deps: deps, Blobs: blobs, Redis: mr}
}
