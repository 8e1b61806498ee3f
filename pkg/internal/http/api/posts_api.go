package api

import (
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text    string  `json:"text" validate:"required,max=4096"`
	GroupID *uint   `json:"group_id"`
	Image   *string `json:"image" validate:"omitempty,max=2048"`
}

func (v postRequest) fields() models.PostFields {
	return models.PostFields{
		Text:    v.Text,
		GroupID: v.GroupID,
		Image:   v.Image,
	}
}

func (h *Handlers) getPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := h.Posts.GetPost(c.UserContext(), uint(id))
	if err != nil {
		return toHttpError(err)
	}
	comments, err := h.Comments.ListComments(c.UserContext(), item.ID)
	if err != nil {
		return toHttpError(err)
	}
	item.Comments = comments

	count, err := h.Relations.CountLikes(c.UserContext(), item.ID)
	if err != nil {
		return toHttpError(err)
	}
	liked := false
	if viewer := exts.GetViewer(c); viewer != nil {
		if liked, err = h.Relations.IsLiked(c.UserContext(), viewer.ID, item.ID); err != nil {
			return toHttpError(err)
		}
	}

	return c.JSON(fiber.Map{
		"post":       item,
		"like_count": count,
		"is_liked":   liked,
	})
}

func (h *Handlers) createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	var data postRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := h.Interactions.CreatePost(c.UserContext(), exts.GetViewer(c), data.fields())
	if err != nil {
		return toHttpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handlers) editPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	var data postRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := h.Interactions.EditPost(c.UserContext(), exts.GetViewer(c), uint(id), data.fields())
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(item)
}

func (h *Handlers) deletePost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	if err := h.Interactions.DeletePost(c.UserContext(), exts.GetViewer(c), uint(id)); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) likePost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	if err := h.Interactions.Like(c.UserContext(), exts.GetViewer(c), uint(id)); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) unlikePost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	if err := h.Interactions.Unlike(c.UserContext(), exts.GetViewer(c), uint(id)); err != nil {
		return toHttpError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) listPostLikers(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	if _, err := h.Posts.GetPost(c.UserContext(), uint(id)); err != nil {
		return toHttpError(err)
	}
	likers, err := h.Relations.ListLikers(c.UserContext(), uint(id))
	if err != nil {
		return toHttpError(err)
	}

	return c.JSON(fiber.Map{
		"count": len(likers),
		"data":  likers,
	})
}

func (h *Handlers) listFeaturedPosts(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	if take <= 0 || take > 100 {
		take = 10
	}

	since := time.Now().Add(-services.DefaultFeaturedWindow)
	posts, err := h.Posts.ListFeaturedPosts(c.UserContext(), since, take)
	if err != nil {
		return toHttpError(err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(posts)
}
