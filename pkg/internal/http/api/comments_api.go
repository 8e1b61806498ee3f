package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Text string `json:"text" validate:"required,max=2048"`
}

func (h *Handlers) createComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := exts.GetViewer(c)

	var data commentRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := h.Comments.NewComment(c.UserContext(), uint(id), user.ID, data.Text)
	if err != nil {
		return toHttpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handlers) editComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := exts.GetViewer(c)

	var data commentRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := h.Comments.EditComment(c.UserContext(), uint(id), user.ID, data.Text)
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(item)
}

func (h *Handlers) deleteComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := exts.GetViewer(c)

	if err := h.Comments.DeleteComment(c.UserContext(), uint(id), user.ID); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}
