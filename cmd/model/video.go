package model

import "time"

// Video 的 LikesCount / CommentsCount 是冗余计数，只能由 counter.Manager 修改
type Video struct {
	ID              int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	OwnerID         int64     `gorm:"not null;index:idx_videos_owner_created,priority:1" json:"ownerId,string"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	VideoUrl        string    `gorm:"size:512;not null" json:"videoFile"`
	VideoBlobID     string    `gorm:"size:255" json:"-"`
	ThumbnailUrl    string    `gorm:"size:512;not null" json:"thumbnail"`
	ThumbnailBlobID string    `gorm:"size:255" json:"-"`
	Duration        float64   `gorm:"not null;default:0" json:"duration"`
	Views           int64     `gorm:"not null;default:0" json:"views"`
	IsPublished     bool      `gorm:"not null;default:false;index" json:"isPublished"`
	LikesCount      int64     `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount   int64     `gorm:"not null;default:0" json:"commentsCount"`
	CreatedAt       time.Time `gorm:"index:idx_videos_owner_created,priority:2" json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Playlist 播放列表，视频成员保存在 playlist_videos
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	OwnerID     int64     `gorm:"not null;index" json:"ownerId,string"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistVideo 播放列表中的视频，(playlist_id, video_id) 唯一保证不重复
type PlaylistVideo struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	PlaylistID int64     `gorm:"not null;uniqueIndex:uk_playlist_video,priority:1" json:"playlistId,string"`
	VideoID    int64     `gorm:"not null;uniqueIndex:uk_playlist_video,priority:2;index" json:"videoId,string"`
	CreatedAt  time.Time `json:"createdAt"`
}
