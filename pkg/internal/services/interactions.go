package services

import (
	"context"
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/events"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

type RelationshipWriter interface {
	Follow(ctx context.Context, follower, author uint) error
	Unfollow(ctx context.Context, follower, author uint) (bool, error)
	Like(ctx context.Context, user, post uint) error
	Unlike(ctx context.Context, user, post uint) (bool, error)
}

type PostWriter interface {
	GetPost(ctx context.Context, id uint) (models.Post, error)
	NewPost(ctx context.Context, author uint, fields models.PostFields) (models.Post, error)
	EditPost(ctx context.Context, id uint, editor uint, fields models.PostFields) (models.Post, error)
	DeletePost(ctx context.Context, id uint, requester uint) error
}

type AccountResolver interface {
	GetAccountByName(ctx context.Context, name string) (models.Account, error)
}

// Interactions is the call contract consumed by the request handling layer.
// A nil viewer is an anonymous caller.
type Interactions struct {
	composer  *FeedComposer
	posts     PostWriter
	relations RelationshipWriter
	accounts  AccountResolver
	publisher events.Publisher
}

func NewInteractions(composer *FeedComposer, posts PostWriter, relations RelationshipWriter, accounts AccountResolver, publisher events.Publisher) *Interactions {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Interactions{
		composer:  composer,
		posts:     posts,
		relations: relations,
		accounts:  accounts,
		publisher: publisher,
	}
}

func ensureViewer(viewer *models.Account) error {
	if viewer == nil {
		return ErrAuthenticationRequired
	}
	return nil
}

func (v *Interactions) notify(subject string, viewer *models.Account, target uint) {
	if err := v.publisher.Publish(events.Event{
		Subject:   subject,
		AccountID: viewer.ID,
		TargetID:  target,
	}); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("An error occurred when publishing event...")
	}
}

func (v *Interactions) GetFeed(ctx context.Context, kind FeedKind, params FeedParams, viewer *models.Account, page int) (Feed, error) {
	return v.composer.Compose(ctx, kind, params, viewer, page)
}

func (v *Interactions) Follow(ctx context.Context, viewer *models.Account, username string) error {
	if err := ensureViewer(viewer); err != nil {
		return err
	}
	author, err := v.accounts.GetAccountByName(ctx, username)
	if err != nil {
		return err
	}
	if err := v.relations.Follow(ctx, viewer.ID, author.ID); err != nil {
		return err
	}
	v.notify(events.SubjectAuthorFollowed, viewer, author.ID)
	return nil
}

// Unfollow of an unknown username is a no-op.
func (v *Interactions) Unfollow(ctx context.Context, viewer *models.Account, username string) error {
	if err := ensureViewer(viewer); err != nil {
		return err
	}
	author, err := v.accounts.GetAccountByName(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	removed, err := v.relations.Unfollow(ctx, viewer.ID, author.ID)
	if err != nil {
		return err
	}
	if removed {
		v.notify(events.SubjectAuthorUnfollowed, viewer, author.ID)
	}
	return nil
}

func (v *Interactions) Like(ctx context.Context, viewer *models.Account, postID uint) error {
	if err := ensureViewer(viewer); err != nil {
		return err
	}
	if _, err := v.posts.GetPost(ctx, postID); err != nil {
		return err
	}
	if err := v.relations.Like(ctx, viewer.ID, postID); err != nil {
		return err
	}
	v.notify(events.SubjectPostLiked, viewer, postID)
	return nil
}

// Unlike of an absent post or a post never liked is a no-op.
func (v *Interactions) Unlike(ctx context.Context, viewer *models.Account, postID uint) error {
	if err := ensureViewer(viewer); err != nil {
		return err
	}
	removed, err := v.relations.Unlike(ctx, viewer.ID, postID)
	if err != nil {
		return err
	}
	if removed {
		v.notify(events.SubjectPostUnliked, viewer, postID)
	}
	return nil
}

func (v *Interactions) CreatePost(ctx context.Context, viewer *models.Account, fields models.PostFields) (models.Post, error) {
	if err := ensureViewer(viewer); err != nil {
		return models.Post{}, err
	}
	post, err := v.posts.NewPost(ctx, viewer.ID, fields)
	if err != nil {
		return post, err
	}
	v.notify(events.SubjectPostCreated, viewer, post.ID)
	return post, nil
}

func (v *Interactions) EditPost(ctx context.Context, viewer *models.Account, postID uint, fields models.PostFields) (models.Post, error) {
	if err := ensureViewer(viewer); err != nil {
		return models.Post{}, err
	}
	return v.posts.EditPost(ctx, postID, viewer.ID, fields)
}

func (v *Interactions) DeletePost(ctx context.Context, viewer *models.Account, postID uint) error {
	if err := ensureViewer(viewer); err != nil {
		return err
	}
	if err := v.posts.DeletePost(ctx, postID, viewer.ID); err != nil {
		return fmt.Errorf("unable to delete post: %w", err)
	}
	v.notify(events.SubjectPostDeleted, viewer, postID)
	return nil
}
