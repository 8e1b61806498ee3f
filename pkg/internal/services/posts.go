package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRecencyOrder is the only order feeds are read in.
const PostRecencyOrder = "posts.created_at DESC, posts.id DESC"

// PostSequence is a lazily evaluated, recency ordered list of posts.
type PostSequence interface {
	Count(ctx context.Context) (int64, error)
	Slice(ctx context.Context, offset, limit int) ([]models.Post, error)
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func FilterPostWithGroup(tx *gorm.DB, groupID uint) *gorm.DB {
	return tx.Where("posts.group_id = ?", groupID)
}

func FilterPostWithAuthors(tx *gorm.DB, authorIDs []uint) *gorm.DB {
	return tx.Where("posts.author_id IN ?", authorIDs)
}

// FilterPostWithFuzzySearch matches the probe as a case-insensitive substring of the text.
// Dialects other than postgres fold ASCII letters only.
func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	probe = "%" + replacer.Replace(probe) + "%"
	if tx.Dialector.Name() == "postgres" {
		return tx.Where(`posts.text ILIKE ? ESCAPE '\'`, probe)
	}
	return tx.Where(`LOWER(posts.text) LIKE ? ESCAPE '\'`, strings.ToLower(probe))
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Group")
}

func (r *PostRepository) ListAll() PostSequence {
	return postQuery{tx: r.db.Model(&models.Post{})}
}

func (r *PostRepository) ListByGroup(groupID uint) PostSequence {
	return postQuery{tx: FilterPostWithGroup(r.db.Model(&models.Post{}), groupID)}
}

func (r *PostRepository) ListByAuthors(authorIDs []uint) PostSequence {
	if len(authorIDs) == 0 {
		return PostSlice(nil)
	}
	return postQuery{tx: FilterPostWithAuthors(r.db.Model(&models.Post{}), authorIDs)}
}

func (r *PostRepository) Search(probe string) PostSequence {
	return postQuery{tx: FilterPostWithFuzzySearch(r.db.Model(&models.Post{}), probe)}
}

func (r *PostRepository) GetPost(ctx context.Context, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, wrapLookupErr(err, "post %d", id)
	}
	return item, nil
}

func (r *PostRepository) validateFields(ctx context.Context, fields models.PostFields) (models.PostFields, error) {
	fields.Text = strings.TrimSpace(fields.Text)
	if len(fields.Text) == 0 {
		return fields, fmt.Errorf("%w: post text cannot be empty", ErrValidation)
	}
	if fields.Image != nil && len(*fields.Image) == 0 {
		fields.Image = nil
	}
	if fields.GroupID != nil {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Group{}).
			Where("id = ?", *fields.GroupID).
			Count(&count).Error; err != nil {
			return fields, fmt.Errorf("unable to check group: %v", err)
		} else if count == 0 {
			return fields, fmt.Errorf("%w: group %d", ErrNotFound, *fields.GroupID)
		}
	}
	return fields, nil
}

func (r *PostRepository) NewPost(ctx context.Context, author uint, fields models.PostFields) (models.Post, error) {
	fields, err := r.validateFields(ctx, fields)
	if err != nil {
		return models.Post{}, err
	}

	item := models.Post{
		Text:     fields.Text,
		Image:    fields.Image,
		GroupID:  fields.GroupID,
		AuthorID: author,
	}

	log.Debug().Uint("author", author).Msg("Saving post record into database...")
	start := time.Now()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, err
	}
	log.Debug().Uint("post", item.ID).Dur("elapsed", time.Since(start)).Msg("The post is posted.")

	return r.GetPost(ctx, item.ID)
}

// EditPost replaces text and group of the post. A nil image keeps the current one.
func (r *PostRepository) EditPost(ctx context.Context, id uint, editor uint, fields models.PostFields) (models.Post, error) {
	item, err := r.GetPost(ctx, id)
	if err != nil {
		return item, err
	}
	if item.AuthorID != editor {
		return item, fmt.Errorf("%w: only the author can edit post %d", ErrPermissionDenied, id)
	}
	if fields, err = r.validateFields(ctx, fields); err != nil {
		return item, err
	}

	item.Text = fields.Text
	item.GroupID = fields.GroupID
	if fields.Image != nil {
		item.Image = fields.Image
	}

	if err := r.db.WithContext(ctx).Model(&item).
		Updates(map[string]any{
			"text":     item.Text,
			"group_id": item.GroupID,
			"image":    item.Image,
		}).Error; err != nil {
		return item, err
	}

	return r.GetPost(ctx, id)
}

func (r *PostRepository) DeletePost(ctx context.Context, id uint, requester uint) error {
	var item models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return wrapLookupErr(err, "post %d", id)
	}
	if item.AuthorID != requester {
		return fmt.Errorf("%w: only the author can delete post %d", ErrPermissionDenied, id)
	}
	return r.db.WithContext(ctx).Delete(&item).Error
}

// PurgeDeletedPosts removes posts soft deleted before the deadline together with their edges.
func (r *PostRepository) PurgeDeletedPosts(ctx context.Context, before time.Time) (int64, error) {
	var idx []uint
	if err := r.db.WithContext(ctx).Unscoped().Model(&models.Post{}).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Pluck("id", &idx).Error; err != nil {
		return 0, err
	}
	if len(idx) == 0 {
		return 0, nil
	}

	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN ?", idx).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id IN ?", idx).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("id IN ?", idx).Delete(&models.Post{})
		purged = res.RowsAffected
		return res.Error
	})
	return purged, err
}

type postQuery struct {
	tx *gorm.DB
}

func (q postQuery) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := q.tx.Session(&gorm.Session{}).WithContext(ctx).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func (q postQuery) Slice(ctx context.Context, offset, limit int) ([]models.Post, error) {
	var items []models.Post
	if err := PreloadGeneral(q.tx.Session(&gorm.Session{}).WithContext(ctx)).
		Order(PostRecencyOrder).
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

// PostSlice is an in-memory sequence, expected to be ordered already.
type PostSlice []models.Post

func (s PostSlice) Count(context.Context) (int64, error) {
	return int64(len(s)), nil
}

func (s PostSlice) Slice(_ context.Context, offset, limit int) ([]models.Post, error) {
	if offset < 0 || limit < 0 {
		return nil, errors.New("offset and limit must not be negative")
	}
	if offset >= len(s) {
		return nil, nil
	}
	end := min(offset+limit, len(s))
	return s[offset:end], nil
}
