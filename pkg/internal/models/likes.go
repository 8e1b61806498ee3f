package models

import "time"

// Like is a (account, post) edge. Edges are hard deleted so the pair can be created again.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" gorm:"uniqueIndex:idx_likes_account_post"`
	PostID    uint      `json:"post_id" gorm:"uniqueIndex:idx_likes_account_post"`
	CreatedAt time.Time `json:"created_at"`
}
