// Package db 是实体存储层，所有表的读写、原子计数和事务都经过 Store
package db

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"

	"MediaHub.com/cmd/model"
	"MediaHub.com/config"
	"MediaHub.com/pkg/utils"
)

const defaultQueryTimeout = 5 * time.Second

type Store struct {
	db      *gorm.DB
	ids     *utils.IDGenerator
	timeout time.Duration
}

// Open 连接 MySQL，挂载 opentracing 插件并自动迁移表结构
func Open(cfg *config.Config, ids *utils.IDGenerator) (*Store, error) {
	gdb, err := gorm.Open(mysql.Open(cfg.MysqlDSN()),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
		},
	)
	if err != nil {
		return nil, errors.WithMessage(err, "open mysql failed")
	}
	if err = gdb.Use(gormopentracing.New()); err != nil {
		return nil, errors.WithMessage(err, "register gorm tracing plugin failed")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Mysql.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Mysql.MaxOpenConns)
	}
	if cfg.Mysql.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Mysql.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(config.Duration(cfg.Mysql.ConnMaxLifetime, time.Hour))

	s := New(gdb, ids, config.Duration(cfg.Mysql.QueryTimeout, defaultQueryTimeout))
	if err = s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func New(gdb *gorm.DB, ids *utils.IDGenerator, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Store{db: gdb, ids: ids, timeout: timeout}
}

func (s *Store) Migrate() error {
	hlog.Info("Starting tables migration...")
	err := s.db.AutoMigrate(
		&model.User{},
		&model.WatchHistory{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.ReconcileTask{},
	)
	if err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return errors.WithMessage(err, "auto migrate failed")
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}

func (s *Store) NewID() int64 {
	return s.ids.Next()
}

// WithContext 返回带查询超时的会话，调用方负责 cancel
func (s *Store) WithContext(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// Transaction fn 中只能使用传入的 tx，返回错误时整体回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, ids: s.ids, timeout: s.timeout})
	})
}

// Ping 用于健康检查
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
