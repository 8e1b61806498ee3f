package models

import "time"

// Subscription is a follow edge from FollowerID to either an author or a group.
// Exactly one of AccountID and GroupID is set.
type Subscription struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"uniqueIndex:idx_subscriptions_account;uniqueIndex:idx_subscriptions_group"`
	Follower   Account   `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
	AccountID  *uint     `json:"account_id,omitempty" gorm:"uniqueIndex:idx_subscriptions_account"`
	Account    *Account  `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	GroupID    *uint     `json:"group_id,omitempty" gorm:"uniqueIndex:idx_subscriptions_group"`
	Group      *Group    `json:"group,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
