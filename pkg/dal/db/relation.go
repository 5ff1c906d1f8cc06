package db

import (
	"context"

	"gorm.io/gorm/clause"

	"MediaHub.com/cmd/model"
)

// CreateSubscription 条件插入，已订阅时返回 false
func (s *Store) CreateSubscription(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Subscription{
		ID:           s.NewID(),
		SubscriberID: subscriberId,
		ChannelID:    channelId,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) DeleteSubscription(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	res := db.Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).Delete(&model.Subscription{})
	return res.RowsAffected == 1, res.Error
}

func (s *Store) IsSubscribed(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	if subscriberId == 0 {
		return false, nil
	}
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountSubscribers 频道的订阅者数量
func (s *Store) CountSubscribers(ctx context.Context, channelId int64) (int64, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	err := db.Model(&model.Subscription{}).Where("channel_id = ?", channelId).Count(&count).Error
	return count, err
}

// CountSubscriptions 用户订阅的频道数量
func (s *Store) CountSubscriptions(ctx context.Context, subscriberId int64) (int64, error) {
	db, cancel := s.WithContext(ctx)
	defer cancel()
	var count int64
	err := db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberId).Count(&count).Error
	return count, err
}
