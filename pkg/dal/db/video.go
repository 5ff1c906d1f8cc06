package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/errno"
)

func (s *Store) CreateVideo(ctx context.Context, video *model.Video) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	video.ID = s.NewID()
	return db.Create(video).Error
}

func (s *Store) GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	video := &model.Video{}
	if err := db.Where("id = ?", videoId).First(video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, err
	}
	return video, nil
}

func (s *Store) VideoExists(ctx context.Context, videoId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&model.Video{}).Where("id = ?", videoId).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateVideo 只更新传入的列，计数字段不允许通过这里修改
func (s *Store) UpdateVideo(ctx context.Context, videoId int64, updates map[string]interface{}) error {
	for _, col := range []string{"likes_count", "comments_count", "views"} {
		if _, ok := updates[col]; ok {
			return errno.InvalidArgumentErr.WithMessage("counter columns are read-only")
		}
	}
	db, cancel := s.WithContext(ctx)
	defer cancel()
	return db.Model(&model.Video{}).Where("id = ?", videoId).Updates(updates).Error
}

// IncrementViews 原子自增播放量
func (s *Store) IncrementViews(ctx context.Context, videoId int64) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	return db.Model(&model.Video{}).Where("id = ?", videoId).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (s *Store) DeleteVideo(ctx context.Context, videoId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where("id = ?", videoId).Delete(&model.Video{})
	return res.RowsAffected == 1, res.Error
}

func (s *Store) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	playlist.ID = s.NewID()
	return db.Create(playlist).Error
}

func (s *Store) GetPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	playlist := &model.Playlist{}
	if err := db.Where("id = ?", playlistId).First(playlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Playlist not found")
		}
		return nil, err
	}
	return playlist, nil
}

func (s *Store) UpdatePlaylist(ctx context.Context, playlistId int64, name, description string) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	return db.Model(&model.Playlist{}).Where("id = ?", playlistId).
		Updates(map[string]interface{}{"name": name, "description": description}).Error
}

// DeletePlaylist 同时删除列表内的视频关系
func (s *Store) DeletePlaylist(ctx context.Context, playlistId int64) error {
	return s.Transaction(ctx, func(tx *Store) error {
		db, cancel := tx.WithContext(ctx)
		defer cancel()
		if err := db.Where("playlist_id = ?", playlistId).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return db.Where("id = ?", playlistId).Delete(&model.Playlist{}).Error
	})
}

// AddPlaylistVideo 已在列表中时不做任何修改，返回是否新增
func (s *Store) AddPlaylistVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.PlaylistVideo{
		ID:         s.NewID(),
		PlaylistID: playlistId,
		VideoID:    videoId,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) RemovePlaylistVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where("playlist_id = ? AND video_id = ?", playlistId, videoId).Delete(&model.PlaylistVideo{})
	return res.RowsAffected == 1, res.Error
}
