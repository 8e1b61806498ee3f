package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
)

var groupSlugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

func (d *Directory) NewGroup(ctx context.Context, title, slug, description string) (models.Group, error) {
	group := models.Group{
		Title:       strings.TrimSpace(title),
		Slug:        strings.ToLower(strings.TrimSpace(slug)),
		Description: description,
	}
	if len(group.Title) == 0 {
		return group, fmt.Errorf("%w: group title cannot be empty", ErrValidation)
	}
	if err := d.validate.Struct(&group); err != nil {
		return group, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !groupSlugPattern.MatchString(group.Slug) {
		return group, fmt.Errorf("%w: invalid group slug, only lowercase letters, digits, dashes and underscores are allowed", ErrValidation)
	}

	var count int64
	if err := d.db.WithContext(ctx).Model(&models.Group{}).
		Where("slug = ?", group.Slug).
		Count(&count).Error; err != nil {
		return group, fmt.Errorf("unable to count existing group: %v", err)
	} else if count > 0 {
		return group, fmt.Errorf("%w: group %q already exists", ErrValidation, group.Slug)
	}

	if err := d.db.WithContext(ctx).Create(&group).Error; err != nil {
		return group, err
	}
	return group, nil
}

func (d *Directory) GetGroupBySlug(ctx context.Context, slug string) (models.Group, error) {
	var group models.Group
	if err := d.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return group, wrapLookupErr(err, "group %q", slug)
	}
	return group, nil
}

func (d *Directory) ListGroups(ctx context.Context, take, offset int) ([]models.Group, error) {
	if take <= 0 || take > 100 {
		take = 100
	}

	var groups []models.Group
	err := d.db.WithContext(ctx).
		Order("title").
		Offset(offset).Limit(take).
		Find(&groups).Error
	return groups, err
}
