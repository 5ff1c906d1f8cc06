package model

import "time"

// ReconcileTask 记录重试后依旧失败的计数器更新，供 reconciler 重新计算
type ReconcileTask struct {
	ID         int64      `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Entity     string     `gorm:"size:20;not null;index:idx_reconcile_target,priority:1" json:"entity"`
	TargetID   int64      `gorm:"not null;index:idx_reconcile_target,priority:2" json:"targetId,string"`
	Counter    string     `gorm:"size:32;not null" json:"counter"`
	Delta      int64      `gorm:"not null" json:"delta"`
	Reason     string     `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `gorm:"index" json:"resolvedAt"`
}
