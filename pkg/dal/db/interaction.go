package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/errno"
)

// 点赞对象类型到 likes 表外键列的映射
var likeColumns = map[string]string{
	constants.LikeTargetVideo:   "video_id",
	constants.LikeTargetComment: "comment_id",
	constants.LikeTargetTweet:   "tweet_id",
}

func likeColumn(kind string) (string, error) {
	col, ok := likeColumns[kind]
	if !ok {
		return "", errno.InvalidArgumentErr.WithMessage("unknown like target " + kind)
	}
	return col, nil
}

// CreateLike 依赖唯一索引做条件插入，重复点赞时返回 false 且不报错
func (s *Store) CreateLike(ctx context.Context, like *model.Like) (bool, error) {
	if _, _, ok := like.Target(); !ok {
		return false, errno.InvalidArgumentErr.WithMessage("like must reference exactly one target")
	}
	db, cancel := s.WithContext(ctx)
	defer cancel()
	like.ID = s.NewID()
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteLike 返回是否真的删除了一行
func (s *Store) DeleteLike(ctx context.Context, userId int64, kind string, targetId int64) (bool, error) {
	col, err := likeColumn(kind)
	if err != nil {
		return false, err
	}
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where("liked_by = ? AND "+col+" = ?", userId, targetId).Delete(&model.Like{})
	return res.RowsAffected == 1, res.Error
}

func (s *Store) IsLiked(ctx context.Context, userId int64, kind string, targetId int64) (bool, error) {
	col, err := likeColumn(kind)
	if err != nil {
		return false, err
	}
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&model.Like{}).Where("liked_by = ? AND "+col+" = ?", userId, targetId).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CountLikes(ctx context.Context, kind string, targetId int64) (int64, error) {
	col, err := likeColumn(kind)
	if err != nil {
		return 0, err
	}
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&model.Like{}).Where(col+" = ?", targetId).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) DeleteLikesByTarget(ctx context.Context, kind string, targetId int64) (int64, error) {
	col, err := likeColumn(kind)
	if err != nil {
		return 0, err
	}
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where(col+" = ?", targetId).Delete(&model.Like{})
	return res.RowsAffected, res.Error
}

// DeleteLikesOfVideoComments 删除某视频下所有评论收到的点赞，需在删除评论之前调用
func (s *Store) DeleteLikesOfVideoComments(ctx context.Context, videoId int64) (int64, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	sub := db.Session(&gorm.Session{NewDB: true}).Model(&model.Comment{}).Select("id").Where("video_id = ?", videoId)
	res := db.Where("comment_id IN (?)", sub).Delete(&model.Like{})
	return res.RowsAffected, res.Error
}

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	comment.ID = s.NewID()
	return db.Create(comment).Error
}

func (s *Store) GetComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	comment := &model.Comment{}
	if err := db.Where("id = ?", commentId).First(comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func (s *Store) UpdateComment(ctx context.Context, commentId int64, content string) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	return db.Model(&model.Comment{}).Where("id = ?", commentId).Update("content", content).Error
}

func (s *Store) DeleteComment(ctx context.Context, commentId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where("id = ?", commentId).Delete(&model.Comment{})
	return res.RowsAffected == 1, res.Error
}

func (s *Store) DeleteCommentsByVideo(ctx context.Context, videoId int64) (int64, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where("video_id = ?", videoId).Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}

func (s *Store) CountComments(ctx context.Context, videoId int64) (int64, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&model.Comment{}).Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	tweet.ID = s.NewID()
	return db.Create(tweet).Error
}

func (s *Store) GetTweet(ctx context.Context, tweetId int64) (*model.Tweet, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	tweet := &model.Tweet{}
	if err := db.Where("id = ?", tweetId).First(tweet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Tweet not found")
		}
		return nil, err
	}
	return tweet, nil
}

func (s *Store) UpdateTweet(ctx context.Context, tweetId int64, content string) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	return db.Model(&model.Tweet{}).Where("id = ?", tweetId).Update("content", content).Error
}

func (s *Store) DeleteTweet(ctx context.Context, tweetId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where("id = ?", tweetId).Delete(&model.Tweet{})
	return res.RowsAffected == 1, res.Error
}
