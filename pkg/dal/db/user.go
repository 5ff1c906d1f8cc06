package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/errno"
)

// CreateUser 用户名或邮箱已存在时返回 ConflictErr，调用方保证两者已规范化
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	user.ID = s.NewID()
	if err := db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return errno.ConflictErr.WithMessage("User with email or username already exists")
		}
		return err
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, userId int64) (*model.User, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	user := &model.User{}
	if err := db.Where("id = ?", userId).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("User does not exist")
		}
		return nil, err
	}
	return user, nil
}

// GetUserByIdentity 按用户名或邮箱查找
func (s *Store) GetUserByIdentity(ctx context.Context, identity string) (*model.User, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	user := &model.User{}
	if err := db.Where("user_name = ? OR email = ?", identity, identity).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("User does not exist")
		}
		return nil, err
	}
	return user, nil
}

func (s *Store) UserExistsByNameOrEmail(ctx context.Context, username, email string) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&model.User{}).Where("user_name = ? OR email = ?", username, email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UserExists(ctx context.Context, userId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&model.User{}).Where("id = ?", userId).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UpdateUser(ctx context.Context, userId int64, updates map[string]interface{}) error {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Model(&model.User{}).Where("id = ?", userId).Updates(updates)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return errno.ConflictErr.WithMessage("User with email or username already exists")
		}
		return res.Error
	}
	return nil
}

// AddWatchHistory 已存在时不重复插入，返回是否新增
func (s *Store) AddWatchHistory(ctx context.Context, userId, videoId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.WatchHistory{
		ID:      s.NewID(),
		UserID:  userId,
		VideoID: videoId,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
