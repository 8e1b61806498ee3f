package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) followUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	if err := h.Interactions.Follow(c.UserContext(), exts.GetViewer(c), c.Params("name")); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) unfollowUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	if err := h.Interactions.Unfollow(c.UserContext(), exts.GetViewer(c), c.Params("name")); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) listFollowers(c *fiber.Ctx) error {
	account, err := h.Directory.GetAccountByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return toHttpError(err)
	}

	followers, err := h.Relations.ListFollowers(c.UserContext(), account.ID)
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(fiber.Map{
		"count": len(followers),
		"data":  followers,
	})
}

func (h *Handlers) listFollowings(c *fiber.Ctx) error {
	account, err := h.Directory.GetAccountByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return toHttpError(err)
	}

	followings, err := h.Relations.ListFollowings(c.UserContext(), account.ID)
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(fiber.Map{
		"count": len(followings),
		"data":  followings,
	})
}
