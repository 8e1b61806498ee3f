package services

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationshipStore keeps follow and like edges. Uniqueness of every edge is enforced by
// the unique indices of the tables, writes insert with ON CONFLICT DO NOTHING so racing
// callers neither duplicate edges nor fail.
type RelationshipStore struct {
	db *gorm.DB
}

func NewRelationshipStore(db *gorm.DB) *RelationshipStore {
	return &RelationshipStore{db: db}
}

func (r *RelationshipStore) Follow(ctx context.Context, follower, author uint) error {
	if follower == author {
		return fmt.Errorf("%w: account %d cannot follow itself", ErrInvalidRelationship, follower)
	}

	subscription := models.Subscription{
		FollowerID: follower,
		AccountID:  &author,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&subscription).Error; err != nil {
		return fmt.Errorf("unable to follow: %v", err)
	}

	log.Debug().Uint("follower", follower).Uint("author", author).Msg("Followed author.")
	return nil
}

// Unfollow reports whether an edge was removed.
func (r *RelationshipStore) Unfollow(ctx context.Context, follower, author uint) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("follower_id = ? AND account_id = ?", follower, author).
		Delete(&models.Subscription{})
	if tx.Error != nil {
		return false, fmt.Errorf("unable to unfollow: %v", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *RelationshipStore) IsFollowing(ctx context.Context, follower, author uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("follower_id = ? AND account_id = ?", follower, author).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("unable to get subscription: %v", err)
	}
	return count > 0, nil
}

func (r *RelationshipStore) ListFollowedAuthors(ctx context.Context, follower uint) ([]uint, error) {
	var idx []uint
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("follower_id = ? AND account_id IS NOT NULL", follower).
		Order("account_id").
		Pluck("account_id", &idx).Error; err != nil {
		return nil, fmt.Errorf("unable to get subscriptions: %v", err)
	}
	return idx, nil
}

// BatchIsFollowing answers IsFollowing for every author in one query.
func (r *RelationshipStore) BatchIsFollowing(ctx context.Context, follower uint, authors []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(authors))
	if len(authors) == 0 {
		return out, nil
	}

	var idx []uint
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("follower_id = ? AND account_id IN ?", follower, lo.Uniq(authors)).
		Pluck("account_id", &idx).Error; err != nil {
		return out, fmt.Errorf("unable to get subscriptions: %v", err)
	}
	for _, id := range idx {
		out[id] = true
	}
	return out, nil
}

// ListFollowers returns the accounts following the author, latest subscription first.
func (r *RelationshipStore) ListFollowers(ctx context.Context, author uint) ([]models.Account, error) {
	var subscriptions []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", author).
		Preload("Follower").
		Order("created_at DESC, id DESC").
		Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("unable to get subscriptions: %v", err)
	}
	return lo.Map(subscriptions, func(item models.Subscription, _ int) models.Account {
		return item.Follower
	}), nil
}

// ListFollowings returns the authors the follower subscribed to, latest subscription first.
func (r *RelationshipStore) ListFollowings(ctx context.Context, follower uint) ([]models.Account, error) {
	var subscriptions []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND account_id IS NOT NULL", follower).
		Preload("Account").
		Order("created_at DESC, id DESC").
		Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("unable to get subscriptions: %v", err)
	}
	return lo.FilterMap(subscriptions, func(item models.Subscription, _ int) (models.Account, bool) {
		if item.Account == nil {
			return models.Account{}, false
		}
		return *item.Account, true
	}), nil
}

func (r *RelationshipStore) SubscribeToGroup(ctx context.Context, follower, group uint) error {
	subscription := models.Subscription{
		FollowerID: follower,
		GroupID:    &group,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&subscription).Error; err != nil {
		return fmt.Errorf("unable to subscribe group: %v", err)
	}
	return nil
}

func (r *RelationshipStore) UnsubscribeFromGroup(ctx context.Context, follower, group uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND group_id = ?", follower, group).
		Delete(&models.Subscription{}).Error; err != nil {
		return fmt.Errorf("unable to unsubscribe group: %v", err)
	}
	return nil
}

func (r *RelationshipStore) IsSubscribedToGroup(ctx context.Context, follower, group uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("follower_id = ? AND group_id = ?", follower, group).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("unable to get subscription: %v", err)
	}
	return count > 0, nil
}
