package http

import (
	"io"
	"net/http/httptest"
	"testing"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestServerServesFeeds(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	raw, err := db.DB()
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })
	require.NoError(t, database.RunMigration(db))

	directory := services.NewDirectory(db)
	posts := services.NewPostRepository(db)
	relations := services.NewRelationshipStore(db)
	composer := services.NewFeedComposer(posts, directory, relations, services.FeedComposerConfig{})

	server := NewServer([]byte("secret"), directory, &api.Handlers{
		Interactions: services.NewInteractions(composer, posts, relations, directory, nil),
		Directory:    directory,
		Posts:        posts,
		Relations:    relations,
		Comments:     services.NewCommentRepository(db),
	})

	resp, err := server.Fiber().Test(httptest.NewRequest(fiber.MethodGet, "/api/feeds/global", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"kind":"global"`)
	assert.Contains(t, string(body), `"items":[]`)

	resp, err = server.Fiber().Test(httptest.NewRequest(fiber.MethodGet, "/api/feeds/following", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
