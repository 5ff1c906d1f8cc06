// Package app 组装各服务共享的基础设施
package app

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"MediaHub.com/config"
	"MediaHub.com/pkg/cache"
	"MediaHub.com/pkg/cascade"
	"MediaHub.com/pkg/counter"
	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/feed"
	"MediaHub.com/pkg/mq"
	"MediaHub.com/pkg/oss"
	"MediaHub.com/pkg/paginate"
	"MediaHub.com/pkg/search"
	"MediaHub.com/pkg/utils"
)

type Deps struct {
	Config   *config.Config
	Store    *db.Store
	Counters *counter.Manager
	Cascade  *cascade.Orchestrator
	Feed     *feed.Executor
	Blobs    oss.BlobStore
	Guard    *cache.CommentGuard
	Events   mq.EventPublisher
	Redis    *redis.Client
	Producer *mq.Producer
}

// Page 按配置的默认值和上限校验分页参数
func (d *Deps) Page(page, limit int64) (paginate.Params, error) {
	return paginate.New(page, limit, int64(d.Config.Pagination.DefaultLimit), int64(d.Config.Pagination.MaxLimit))
}

// Assemble 由已经建立好的连接组装业务依赖，测试中也通过它构造
func Assemble(cfg *config.Config, store *db.Store, blobs oss.BlobStore, searcher search.Searcher,
	redisClient *redis.Client, producer *mq.Producer) *Deps {
	d := &Deps{
		Config:   cfg,
		Store:    store,
		Blobs:    blobs,
		Redis:    redisClient,
		Producer: producer,
		Events:   mq.NopPublisher{},
	}

	recorder := counter.TableRecorder(store)
	if producer != nil {
		d.Events = producer
		recorder = counter.Chain(recorder, counter.QueueRecorder(producer))
	}
	d.Counters = counter.NewManager(store, recorder, config.Duration(cfg.Counter.RetryBackoff, 50*time.Millisecond))
	d.Cascade = cascade.New(store, blobs, d.Counters, cfg.Cascade.Transactional)
	d.Feed = feed.NewExecutor(store, searcher, cfg.Elasticsearch.MaxHits)
	if redisClient != nil {
		d.Guard = cache.NewCommentGuard(redisClient, cfg.Comment)
	}
	return d
}

// New 连接 MySQL、Redis、MinIO、Elasticsearch 和 RabbitMQ。除 MySQL 外其他依赖不可用时降级运行
func New(ctx context.Context, cfg *config.Config) (*Deps, func(), error) {
	ids, err := utils.NewIDGenerator(cfg.Snowflake.Node)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "init snowflake node")
	}
	store, err := db.Open(cfg, ids)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){func() { _ = store.Close() }}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		hlog.Warnf("redis unavailable, comment guard disabled: %v", err)
		redisClient = nil
	} else {
		closers = append(closers, func() { _ = redisClient.Close() })
	}

	var blobs oss.BlobStore = oss.Unavailable{}
	if cfg.Minio.Endpoint != "" {
		ms, err := oss.NewMinioStore(ctx, cfg)
		if err != nil {
			hlog.Errorf("minio unavailable, uploads will fail: %v", err)
		} else {
			blobs = ms
		}
	}

	var producer *mq.Producer
	if cfg.RabbitMq.Enable {
		producer, err = mq.NewProducer(cfg.RabbitMqURL())
		if err != nil {
			hlog.Errorf("rabbitmq unavailable, events disabled: %v", err)
			producer = nil
		} else {
			closers = append(closers, func() { _ = producer.Close() })
		}
	}

	d := Assemble(cfg, store, blobs, search.New(cfg, store), redisClient, producer)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return d, cleanup, nil
}

// Publish 发送互动事件，失败只记日志
func (d *Deps) Publish(ctx context.Context, event *mq.EngagementEvent) {
	if d.Events == nil {
		return
	}
	if err := d.Events.PublishEngagementEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish engagement event failed: type=%s target_id=%d err=%v", event.Type, event.TargetID, err)
	}
}
