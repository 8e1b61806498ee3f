package services

import (
	"context"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/samber/lo"
)

const DefaultFeaturedWindow = 7 * 24 * time.Hour

type postPoints struct {
	PostID uint
	Points int64
}

// ListFeaturedPosts ranks posts by the likes they received since the given time.
// Ties go to the newer post.
func (r *PostRepository) ListFeaturedPosts(ctx context.Context, since time.Time, count int) ([]models.Post, error) {
	if count <= 0 {
		return nil, nil
	}

	var ranked []postPoints
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("likes.post_id, COUNT(likes.id) AS points").
		Joins("JOIN posts ON posts.id = likes.post_id AND posts.deleted_at IS NULL").
		Where("likes.created_at >= ?", since).
		Group("likes.post_id").
		Order("points DESC, likes.post_id DESC").
		Limit(count).
		Scan(&ranked).Error; err != nil {
		return nil, fmt.Errorf("unable to rank posts: %v", err)
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	idx := lo.Map(ranked, func(item postPoints, _ int) uint {
		return item.PostID
	})

	var posts []models.Post
	if err := PreloadGeneral(r.db.WithContext(ctx)).
		Where("id IN ?", idx).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("unable to load featured posts: %v", err)
	}
	postMap := lo.SliceToMap(posts, func(item models.Post) (uint, models.Post) {
		return item.ID, item
	})

	return lo.FilterMap(idx, func(id uint, _ int) (models.Post, bool) {
		item, ok := postMap[id]
		return item, ok
	}), nil
}
