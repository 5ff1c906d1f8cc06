package model

import "time"

type Comment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	VideoID    int64     `gorm:"not null;index:idx_comments_video_created,priority:1" json:"videoId,string"`
	OwnerID    int64     `gorm:"not null;index" json:"ownerId,string"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	LikesCount int64     `gorm:"not null;default:0" json:"likesCount"`
	CreatedAt  time.Time `gorm:"index:idx_comments_video_created,priority:2" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Tweet struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	OwnerID    int64     `gorm:"not null;index" json:"ownerId,string"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	LikesCount int64     `gorm:"not null;default:0" json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Like 三个目标字段有且只有一个非空；联合唯一索引里 NULL 互不冲突，
// 所以 (liked_by, video_id) 等三组索引各自只约束对应的目标
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	VideoID   *int64    `gorm:"uniqueIndex:uk_likes_user_video,priority:2;index"`
	CommentID *int64    `gorm:"uniqueIndex:uk_likes_user_comment,priority:2;index"`
	TweetID   *int64    `gorm:"uniqueIndex:uk_likes_user_tweet,priority:2;index"`
	LikedBy   int64     `gorm:"not null;uniqueIndex:uk_likes_user_video,priority:1;uniqueIndex:uk_likes_user_comment,priority:1;uniqueIndex:uk_likes_user_tweet,priority:1"`
	CreatedAt time.Time `gorm:"index"`
}

// Target 返回点赞对象的类型和 ID，三个字段都为空时 ok 为 false
func (l *Like) Target() (kind string, id int64, ok bool) {
	n := 0
	if l.VideoID != nil {
		kind, id = "video", *l.VideoID
		n++
	}
	if l.CommentID != nil {
		kind, id = "comment", *l.CommentID
		n++
	}
	if l.TweetID != nil {
		kind, id = "tweet", *l.TweetID
		n++
	}
	return kind, id, n == 1
}
