package services

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

const recentLikersQuery = `
	SELECT post_id, account_id FROM (
		SELECT post_id, account_id,
			ROW_NUMBER() OVER (PARTITION BY post_id ORDER BY created_at DESC, id DESC) AS rn
		FROM likes
		WHERE post_id IN ?
	) ranked
	WHERE rn <= ?
	ORDER BY post_id, rn`

type likeRank struct {
	PostID    uint
	AccountID uint
}

func (r *RelationshipStore) Like(ctx context.Context, user, post uint) error {
	like := models.Like{
		AccountID: user,
		PostID:    post,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error; err != nil {
		return fmt.Errorf("unable to like: %v", err)
	}

	log.Debug().Uint("user", user).Uint("post", post).Msg("Liked post.")
	return nil
}

// Unlike reports whether an edge was removed.
func (r *RelationshipStore) Unlike(ctx context.Context, user, post uint) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("account_id = ? AND post_id = ?", user, post).
		Delete(&models.Like{})
	if tx.Error != nil {
		return false, fmt.Errorf("unable to unlike: %v", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *RelationshipStore) IsLiked(ctx context.Context, user, post uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("account_id = ? AND post_id = ?", user, post).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("unable to get like: %v", err)
	}
	return count > 0, nil
}

func (r *RelationshipStore) CountLikes(ctx context.Context, post uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", post).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("unable to count likes: %v", err)
	}
	return count, nil
}

func (r *RelationshipStore) ListRecentLikers(ctx context.Context, post uint, limit int) ([]models.Account, error) {
	mapping, err := r.BatchListRecentLikers(ctx, []uint{post}, limit)
	if err != nil {
		return nil, err
	}
	return mapping[post], nil
}

// ListLikers returns every account that liked the post, most recent first.
func (r *RelationshipStore) ListLikers(ctx context.Context, post uint) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.WithContext(ctx).
		Joins("JOIN likes ON likes.account_id = accounts.id").
		Where("likes.post_id = ?", post).
		Order("likes.created_at DESC, likes.id DESC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("unable to list likers: %v", err)
	}
	return accounts, nil
}

func (r *RelationshipStore) BatchIsLiked(ctx context.Context, user uint, posts []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	var idx []uint
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("account_id = ? AND post_id IN ?", user, lo.Uniq(posts)).
		Pluck("post_id", &idx).Error; err != nil {
		return out, fmt.Errorf("unable to get likes: %v", err)
	}
	for _, id := range idx {
		out[id] = true
	}
	return out, nil
}

func (r *RelationshipStore) BatchCountLikes(ctx context.Context, posts []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	var counts []struct {
		PostID uint
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN ?", lo.Uniq(posts)).
		Group("post_id").
		Scan(&counts).Error; err != nil {
		return out, fmt.Errorf("unable to count likes: %v", err)
	}
	for _, info := range counts {
		out[info.PostID] = info.Count
	}
	return out, nil
}

// BatchListRecentLikers returns at most limit likers per post, most recent first.
// Two queries regardless of the number of posts.
func (r *RelationshipStore) BatchListRecentLikers(ctx context.Context, posts []uint, limit int) (map[uint][]models.Account, error) {
	out := make(map[uint][]models.Account, len(posts))
	if len(posts) == 0 || limit <= 0 {
		return out, nil
	}

	var ranked []likeRank
	if err := r.db.WithContext(ctx).
		Raw(recentLikersQuery, lo.Uniq(posts), limit).
		Scan(&ranked).Error; err != nil {
		return out, fmt.Errorf("unable to list recent likers: %v", err)
	}
	if len(ranked) == 0 {
		return out, nil
	}

	var accounts []models.Account
	if err := r.db.WithContext(ctx).
		Where("id IN ?", lo.Uniq(lo.Map(ranked, func(item likeRank, _ int) uint {
			return item.AccountID
		}))).
		Find(&accounts).Error; err != nil {
		return out, fmt.Errorf("unable to load likers: %v", err)
	}
	accountMap := lo.SliceToMap(accounts, func(item models.Account) (uint, models.Account) {
		return item.ID, item
	})

	for _, item := range ranked {
		if account, ok := accountMap[item.AccountID]; ok {
			out[item.PostID] = append(out[item.PostID], account)
		}
	}
	return out, nil
}
