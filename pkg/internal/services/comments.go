package services

import (
	"context"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) NewComment(ctx context.Context, post, author uint, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return models.Comment{}, fmt.Errorf("%w: comment text cannot be empty", ErrValidation)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", post).
		Count(&count).Error; err != nil {
		return models.Comment{}, fmt.Errorf("unable to check post: %v", err)
	} else if count == 0 {
		return models.Comment{}, fmt.Errorf("%w: post %d", ErrNotFound, post)
	}

	comment := models.Comment{
		Text:     text,
		PostID:   post,
		AuthorID: author,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&comment).Error; err != nil {
		return comment, err
	}
	return r.GetComment(ctx, comment.ID)
}

func (r *CommentRepository) GetComment(ctx context.Context, id uint) (models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return comment, wrapLookupErr(err, "comment %d", id)
	}
	return comment, nil
}

// ListComments returns the comments of a post, oldest first.
func (r *CommentRepository) ListComments(ctx context.Context, post uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", post).
		Order("created_at, id").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("unable to list comments: %v", err)
	}
	return comments, nil
}

func (r *CommentRepository) EditComment(ctx context.Context, id, editor uint, text string) (models.Comment, error) {
	comment, err := r.GetComment(ctx, id)
	if err != nil {
		return comment, err
	}
	if comment.AuthorID != editor {
		return comment, fmt.Errorf("%w: only the author can edit comment %d", ErrPermissionDenied, id)
	}
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return comment, fmt.Errorf("%w: comment text cannot be empty", ErrValidation)
	}

	if err := r.db.WithContext(ctx).Model(&comment).Update("text", text).Error; err != nil {
		return comment, err
	}
	comment.Text = text
	return comment, nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id, requester uint) error {
	comment, err := r.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != requester {
		return fmt.Errorf("%w: only the author can delete comment %d", ErrPermissionDenied, id)
	}
	return r.db.WithContext(ctx).Delete(&comment).Error
}
