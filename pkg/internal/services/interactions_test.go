package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/events"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.Lock()
	defer p.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) subjects() []string {
	p.Lock()
	defer p.Unlock()
	return lo.Map(p.events, func(item events.Event, _ int) string {
		return item.Subject
	})
}

func newTestInteractions(db *gorm.DB, publisher events.Publisher) *Interactions {
	posts := NewPostRepository(db)
	directory := NewDirectory(db)
	relations := NewRelationshipStore(db)
	composer := NewFeedComposer(posts, directory, relations, FeedComposerConfig{PageSize: 10})
	return NewInteractions(composer, posts, relations, directory, publisher)
}

func TestInteractionsRequireViewer(t *testing.T) {
	db := newTestDB(t)
	author := seedAccount(t, db, "author")
	post := seedPost(t, db, author, "hello", nil)
	v := newTestInteractions(db, nil)
	ctx := context.Background()

	assert.ErrorIs(t, v.Follow(ctx, nil, "author"), ErrAuthenticationRequired)
	assert.ErrorIs(t, v.Unfollow(ctx, nil, "author"), ErrAuthenticationRequired)
	assert.ErrorIs(t, v.Like(ctx, nil, post.ID), ErrAuthenticationRequired)
	assert.ErrorIs(t, v.Unlike(ctx, nil, post.ID), ErrAuthenticationRequired)
	assert.ErrorIs(t, v.DeletePost(ctx, nil, post.ID), ErrAuthenticationRequired)

	_, err := v.CreatePost(ctx, nil, models.PostFields{Text: "anon"})
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
	_, err = v.EditPost(ctx, nil, post.ID, models.PostFields{Text: "anon"})
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
	_, err = v.GetFeed(ctx, FeedKindFollowing, FeedParams{}, nil, 1)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	feed, err := v.GetFeed(ctx, FeedKindGlobal, FeedParams{}, nil, 1)
	require.NoError(t, err)
	assert.Len(t, feed.Page.Items, 1)
}

func TestInteractionsFollowFlow(t *testing.T) {
	db := newTestDB(t)
	viewer := seedAccount(t, db, "viewer")
	seedAccount(t, db, "author")
	publisher := &recordingPublisher{}
	v := newTestInteractions(db, publisher)
	ctx := context.Background()

	require.NoError(t, v.Follow(ctx, &viewer, "author"))
	assert.ErrorIs(t, v.Follow(ctx, &viewer, "viewer"), ErrInvalidRelationship)
	assert.ErrorIs(t, v.Follow(ctx, &viewer, "ghost"), ErrNotFound)
	require.NoError(t, v.Unfollow(ctx, &viewer, "ghost"))
	require.NoError(t, v.Unfollow(ctx, &viewer, "author"))
	require.NoError(t, v.Unfollow(ctx, &viewer, "author"))

	assert.Equal(t, []string{events.SubjectAuthorFollowed, events.SubjectAuthorUnfollowed}, publisher.subjects())
	assert.Equal(t, viewer.ID, publisher.events[0].AccountID)
}

func TestInteractionsPostLifecycle(t *testing.T) {
	db := newTestDB(t)
	viewer := seedAccount(t, db, "viewer")
	fan := seedAccount(t, db, "fan")
	publisher := &recordingPublisher{}
	v := newTestInteractions(db, publisher)
	ctx := context.Background()

	_, err := v.CreatePost(ctx, &viewer, models.PostFields{Text: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	post, err := v.CreatePost(ctx, &viewer, models.PostFields{Text: "hello"})
	require.NoError(t, err)

	require.NoError(t, v.Like(ctx, &fan, post.ID))
	assert.ErrorIs(t, v.Like(ctx, &fan, 9999), ErrNotFound)
	require.NoError(t, v.Unlike(ctx, &fan, 9999))
	require.NoError(t, v.Unlike(ctx, &fan, post.ID))
	require.NoError(t, v.Unlike(ctx, &fan, post.ID))

	_, err = v.EditPost(ctx, &fan, post.ID, models.PostFields{Text: "mine now"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	edited, err := v.EditPost(ctx, &viewer, post.ID, models.PostFields{Text: "hello again"})
	require.NoError(t, err)
	assert.Equal(t, "hello again", edited.Text)

	assert.ErrorIs(t, v.DeletePost(ctx, &fan, post.ID), ErrPermissionDenied)
	require.NoError(t, v.DeletePost(ctx, &viewer, post.ID))

	feed, err := v.GetFeed(ctx, FeedKindGlobal, FeedParams{}, &viewer, 1)
	require.NoError(t, err)
	assert.Empty(t, feed.Page.Items)

	assert.Equal(t, []string{
		events.SubjectPostCreated,
		events.SubjectPostLiked,
		events.SubjectPostUnliked,
		events.SubjectPostDeleted,
	}, publisher.subjects())
}

func TestInteractionsIgnorePublishFailures(t *testing.T) {
	db := newTestDB(t)
	viewer := seedAccount(t, db, "viewer")
	publisher := &recordingPublisher{err: errors.New("broker is down")}
	v := newTestInteractions(db, publisher)

	_, err := v.CreatePost(context.Background(), &viewer, models.PostFields{Text: "still posted"})
	require.NoError(t, err)
	assert.Len(t, publisher.subjects(), 1)
}
