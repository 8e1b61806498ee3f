package services

import (
	"context"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type FeedKind string

const (
	FeedKindGlobal    FeedKind = "global"
	FeedKindGroup     FeedKind = "group"
	FeedKindProfile   FeedKind = "profile"
	FeedKindFollowing FeedKind = "following"
	FeedKindSearch    FeedKind = "search"
)

const DefaultLikersPreview = 3

// FeedParams selects the scope of a feed, only the field of the requested kind is read.
type FeedParams struct {
	Slug       string
	Username   string
	SearchTerm string
}

type EnrichedPost struct {
	models.Post

	IsLiked          bool             `json:"is_liked"`
	IsAuthorFollowed bool             `json:"is_author_followed"`
	LikeCount        int64            `json:"like_count"`
	RecentLikers     []models.Account `json:"recent_likers"`
}

// Feed is one page of a feed together with the scope it was read from.
type Feed struct {
	Kind FeedKind           `json:"kind"`
	Page Page[EnrichedPost] `json:"page"`

	Group      *models.Group   `json:"group,omitempty"`
	Author     *models.Account `json:"author,omitempty"`
	Following  bool            `json:"following"`
	SearchTerm string          `json:"search_term,omitempty"`
}

type PostSource interface {
	ListAll() PostSequence
	ListByGroup(groupID uint) PostSequence
	ListByAuthors(authorIDs []uint) PostSequence
	Search(probe string) PostSequence
}

type FeedDirectory interface {
	GetAccountByName(ctx context.Context, name string) (models.Account, error)
	GetGroupBySlug(ctx context.Context, slug string) (models.Group, error)
}

// RelationshipReader is the read side of the relationship store the composer needs.
type RelationshipReader interface {
	ListFollowedAuthors(ctx context.Context, follower uint) ([]uint, error)
	BatchIsFollowing(ctx context.Context, follower uint, authors []uint) (map[uint]bool, error)
	BatchIsLiked(ctx context.Context, user uint, posts []uint) (map[uint]bool, error)
	BatchCountLikes(ctx context.Context, posts []uint) (map[uint]int64, error)
	BatchListRecentLikers(ctx context.Context, posts []uint, limit int) (map[uint][]models.Account, error)
}

type FeedComposerConfig struct {
	PageSize      int
	LikersPreview int
}

type FeedComposer struct {
	posts     PostSource
	directory FeedDirectory
	relations RelationshipReader
	paginator Paginator
	likers    int
}

func NewFeedComposer(posts PostSource, directory FeedDirectory, relations RelationshipReader, cfg FeedComposerConfig) *FeedComposer {
	likers := cfg.LikersPreview
	if likers <= 0 {
		likers = DefaultLikersPreview
	}
	return &FeedComposer{
		posts:     posts,
		directory: directory,
		relations: relations,
		paginator: NewPaginator(cfg.PageSize),
		likers:    likers,
	}
}

func (v *FeedComposer) Compose(ctx context.Context, kind FeedKind, params FeedParams, viewer *models.Account, page int) (Feed, error) {
	feed := Feed{Kind: kind}

	var sequence PostSequence
	switch kind {
	case FeedKindGlobal:
		sequence = v.posts.ListAll()
	case FeedKindGroup:
		group, err := v.directory.GetGroupBySlug(ctx, params.Slug)
		if err != nil {
			return feed, err
		}
		feed.Group = &group
		sequence = v.posts.ListByGroup(group.ID)
	case FeedKindProfile:
		author, err := v.directory.GetAccountByName(ctx, params.Username)
		if err != nil {
			return feed, err
		}
		feed.Author = &author
		sequence = v.posts.ListByAuthors([]uint{author.ID})
	case FeedKindFollowing:
		if viewer == nil {
			return feed, fmt.Errorf("%w: following feed needs a signed in viewer", ErrAuthenticationRequired)
		}
		authors, err := v.relations.ListFollowedAuthors(ctx, viewer.ID)
		if err != nil {
			return feed, err
		}
		sequence = v.posts.ListByAuthors(authors)
	case FeedKindSearch:
		feed.SearchTerm = strings.TrimSpace(params.SearchTerm)
		sequence = v.posts.Search(feed.SearchTerm)
	default:
		return feed, fmt.Errorf("%w: unknown feed kind %q", ErrValidation, kind)
	}

	total, err := sequence.Count(ctx)
	if err != nil {
		return feed, fmt.Errorf("unable to count posts: %v", err)
	}
	window := v.paginator.Window(total, page)

	var posts []models.Post
	if window.InRange() {
		if posts, err = sequence.Slice(ctx, window.Offset, window.Limit); err != nil {
			return feed, fmt.Errorf("unable to list posts: %v", err)
		}
	}

	items, err := v.enrich(ctx, posts, viewer)
	if err != nil {
		return feed, err
	}
	feed.Page = NewPage(window, items)

	if feed.Author != nil && viewer != nil && viewer.ID != feed.Author.ID {
		following, err := v.relations.BatchIsFollowing(ctx, viewer.ID, []uint{feed.Author.ID})
		if err != nil {
			return feed, err
		}
		feed.Following = following[feed.Author.ID]
	}

	log.Debug().
		Str("kind", string(kind)).
		Int("page", window.Number).
		Int("items", len(items)).
		Int64("total", total).
		Msg("Composed feed.")

	return feed, nil
}

// enrich attaches viewer relative state. It reads only the ids present on this page,
// with a constant number of queries.
func (v *FeedComposer) enrich(ctx context.Context, posts []models.Post, viewer *models.Account) ([]EnrichedPost, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	postIdx := lo.Map(posts, func(item models.Post, _ int) uint {
		return item.ID
	})
	authorIdx := lo.Uniq(lo.Map(posts, func(item models.Post, _ int) uint {
		return item.AuthorID
	}))

	counts, err := v.relations.BatchCountLikes(ctx, postIdx)
	if err != nil {
		return nil, err
	}
	likers, err := v.relations.BatchListRecentLikers(ctx, postIdx, v.likers)
	if err != nil {
		return nil, err
	}

	liked := map[uint]bool{}
	following := map[uint]bool{}
	if viewer != nil {
		if liked, err = v.relations.BatchIsLiked(ctx, viewer.ID, postIdx); err != nil {
			return nil, err
		}
		authorIdx = lo.Without(authorIdx, viewer.ID)
		if following, err = v.relations.BatchIsFollowing(ctx, viewer.ID, authorIdx); err != nil {
			return nil, err
		}
	}

	return lo.Map(posts, func(item models.Post, _ int) EnrichedPost {
		recent := likers[item.ID]
		if recent == nil {
			recent = []models.Account{}
		}
		return EnrichedPost{
			Post:             item,
			IsLiked:          liked[item.ID],
			IsAuthorFollowed: viewer != nil && viewer.ID != item.AuthorID && following[item.AuthorID],
			LikeCount:        counts[item.ID],
			RecentLikers:     recent,
		}
	}), nil
}
