package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) listGroups(c *fiber.Ctx) error {
	take := c.QueryInt("take", 0)
	offset := c.QueryInt("offset", 0)

	groups, err := h.Directory.ListGroups(c.UserContext(), take, offset)
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(groups)
}

func (h *Handlers) createGroup(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	var data struct {
		Title       string `json:"title" validate:"required,max=200"`
		Slug        string `json:"slug" validate:"required,max=50"`
		Description string `json:"description" validate:"max=4096"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	group, err := h.Directory.NewGroup(c.UserContext(), data.Title, data.Slug, data.Description)
	if err != nil {
		return toHttpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *Handlers) followGroup(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := exts.GetViewer(c)

	group, err := h.Directory.GetGroupBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return toHttpError(err)
	}
	if err := h.Relations.SubscribeToGroup(c.UserContext(), user.ID, group.ID); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) unfollowGroup(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := exts.GetViewer(c)

	group, err := h.Directory.GetGroupBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return toHttpError(err)
	}
	if err := h.Relations.UnsubscribeFromGroup(c.UserContext(), user.ID, group.ID); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}
