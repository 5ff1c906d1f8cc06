package model

import "time"

// User 用户即频道，频道的订阅者数量由 subscriptions 表实时统计
type User struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	UserName      string    `gorm:"size:64;not null;uniqueIndex:uk_users_username" json:"username"`
	Email         string    `gorm:"size:128;not null;uniqueIndex:uk_users_email" json:"email"`
	FullName      string    `gorm:"size:128;not null;index" json:"fullName"`
	AvatarUrl     string    `gorm:"size:512" json:"avatarUrl"`
	AvatarBlobID  string    `gorm:"size:255" json:"-"`
	CoverImageUrl string    `gorm:"size:512" json:"coverImageUrl"`
	CoverBlobID   string    `gorm:"size:255" json:"-"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// WatchHistory 观看历史，(user_id, video_id) 唯一，按 id 递增即插入顺序
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	UserID    int64     `gorm:"not null;uniqueIndex:uk_watch_user_video,priority:1" json:"userId,string"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uk_watch_user_video,priority:2;index" json:"videoId,string"`
	CreatedAt time.Time `json:"createdAt"`
}
