package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"MediaHub.com/cmd/model"
)

// AddToCounter 单条语句完成自增并在 0 处截断，table/column 由调用方从白名单中给出
func (s *Store) AddToCounter(ctx context.Context, table, column string, id, delta int64) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	return db.Table(table).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)).Error
}

// RecomputeCounter 按来源表实时统计并覆盖冗余计数
func (s *Store) RecomputeCounter(ctx context.Context, table, column, sourceTable, sourceColumn string, id int64) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	return db.Table(table).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("(SELECT COUNT(*) FROM "+sourceTable+" WHERE "+sourceColumn+" = ?)", id)).Error
}

func (s *Store) GetCounter(ctx context.Context, table, column string, id int64) (int64, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var value int64
	err := db.Table(table).Select(column).Where("id = ?", id).Scan(&value).Error
	return value, err
}

func (s *Store) CreateReconcileTask(ctx context.Context, task *model.ReconcileTask) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	task.ID = s.NewID()
	return db.Create(task).Error
}

func (s *Store) ListPendingReconcileTasks(ctx context.Context, limit int) ([]*model.ReconcileTask, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	tasks := make([]*model.ReconcileTask, 0)
	err := db.Where("resolved_at IS NULL").Order("id ASC").Limit(limit).Find(&tasks).Error
	return tasks, err
}

// ResolveReconcileTasks 重新计算后同一目标的所有未完成任务一并标记完成
func (s *Store) ResolveReconcileTasks(ctx context.Context, entity string, targetId int64, counter string) (int64, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Model(&model.ReconcileTask{}).
		Where("entity = ? AND target_id = ? AND counter = ? AND resolved_at IS NULL", entity, targetId, counter).
		Update("resolved_at", time.Now())
	return res.RowsAffected, res.Error
}
