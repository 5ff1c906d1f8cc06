// Package dbtest 为测试提供基于内存 SQLite 的 Store
package dbtest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/utils"
)

// New 每个测试独占一个内存库，测试结束时关闭
func New(t testing.TB) *db.Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ids, err := utils.NewIDGenerator(1)
	require.NoError(t, err)
	s := db.New(gdb, ids, 5*time.Second)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { _ = s.Close() })
	return s
}
