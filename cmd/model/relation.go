package model

import "time"

// Subscription 订阅关系：SubscriberID 订阅了 ChannelID
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uk_subscriptions_pair,priority:1" json:"subscriberId,string"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uk_subscriptions_pair,priority:2;index" json:"channelId,string"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}
