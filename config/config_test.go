package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte("mysql:\n  addr: \"db:3306\"\n  database: \"media\"\npagination:\n  max_limit: 20\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

	t.Setenv("MEDIAHUB_MYSQL_USERNAME", "svc")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", cfg.Mysql.Addr)
	assert.Equal(t, "svc", cfg.Mysql.Username)
	assert.Equal(t, 20, cfg.Pagination.MaxLimit)
	// 未配置的字段使用默认值
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.True(t, cfg.Cascade.Transactional)
	assert.Equal(t, "svc:@tcp(db:3306)/media?charset=utf8mb4&parseTime=True&loc=Local", cfg.MysqlDSN())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Comment.MaxLength)
	assert.Equal(t, "0.0.0.0:8888", cfg.Server.Addr)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, Duration("2s", time.Second))
	assert.Equal(t, time.Second, Duration("", time.Second))
	assert.Equal(t, time.Second, Duration("bogus", time.Second))
}
