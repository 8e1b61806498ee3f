package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Interactions *services.Interactions
	Directory    *services.Directory
	Posts        *services.PostRepository
	Relations    *services.RelationshipStore
	Comments     *services.CommentRepository
}

func MapAPIs(app *fiber.App, baseURL string, h *Handlers) {
	api := app.Group(baseURL).Name("API")
	{
		feeds := api.Group("/feeds").Name("Feeds API")
		{
			feeds.Get("/global", h.getGlobalFeed)
			feeds.Get("/following", h.getFollowingFeed)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/search", h.searchPosts)
			posts.Get("/featured", h.listFeaturedPosts)
			posts.Get("/:postId", h.getPost)
			posts.Post("/", h.createPost)
			posts.Put("/:postId", h.editPost)
			posts.Delete("/:postId", h.deletePost)

			posts.Post("/:postId/like", h.likePost)
			posts.Delete("/:postId/like", h.unlikePost)
			posts.Get("/:postId/likes", h.listPostLikers)

			posts.Post("/:postId/comments", h.createComment)
		}

		comments := api.Group("/comments").Name("Comments API")
		{
			comments.Put("/:commentId", h.editComment)
			comments.Delete("/:commentId", h.deleteComment)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/:name/posts", h.getProfileFeed)
			users.Post("/:name/follow", h.followUser)
			users.Delete("/:name/follow", h.unfollowUser)
			users.Get("/:name/followers", h.listFollowers)
			users.Get("/:name/followings", h.listFollowings)
		}

		groups := api.Group("/groups").Name("Groups API")
		{
			groups.Get("/", h.listGroups)
			groups.Post("/", h.createGroup)
			groups.Get("/:slug/posts", h.getGroupFeed)
			groups.Post("/:slug/follow", h.followGroup)
			groups.Delete("/:slug/follow", h.unfollowGroup)
		}
	}
}
