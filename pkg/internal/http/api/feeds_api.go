package api

import (
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) composeFeed(c *fiber.Ctx, kind services.FeedKind, params services.FeedParams) error {
	feed, err := h.Interactions.GetFeed(
		c.UserContext(),
		kind,
		params,
		exts.GetViewer(c),
		services.ParsePageNumber(c.Query("page")),
	)
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(feed)
}

func (h *Handlers) getGlobalFeed(c *fiber.Ctx) error {
	return h.composeFeed(c, services.FeedKindGlobal, services.FeedParams{})
}

func (h *Handlers) getFollowingFeed(c *fiber.Ctx) error {
	return h.composeFeed(c, services.FeedKindFollowing, services.FeedParams{})
}

func (h *Handlers) getGroupFeed(c *fiber.Ctx) error {
	return h.composeFeed(c, services.FeedKindGroup, services.FeedParams{Slug: c.Params("slug")})
}

func (h *Handlers) getProfileFeed(c *fiber.Ctx) error {
	return h.composeFeed(c, services.FeedKindProfile, services.FeedParams{Username: c.Params("name")})
}

// searchPosts falls back to the global feed when no probe was given.
func (h *Handlers) searchPosts(c *fiber.Ctx) error {
	probe := strings.TrimSpace(c.Query("probe"))
	if len(probe) == 0 {
		return h.getGlobalFeed(c)
	}
	return h.composeFeed(c, services.FeedKindSearch, services.FeedParams{SearchTerm: probe})
}
