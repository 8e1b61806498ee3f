package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("api-test-secret")

type testEnv struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

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
	composer := services.NewFeedComposer(posts, directory, relations, services.FeedComposerConfig{PageSize: 2})

	app := fiber.New(fiber.Config{
		JSONEncoder: jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder: jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
	})
	app.Use(exts.ContextMiddleware(testSecret, directory))
	MapAPIs(app, "/api", &Handlers{
		Interactions: services.NewInteractions(composer, posts, relations, directory, nil),
		Directory:    directory,
		Posts:        posts,
		Relations:    relations,
		Comments:     services.NewCommentRepository(db),
	})

	return &testEnv{t: t, app: app, db: db}
}

func (e *testEnv) token(id uint, name string) string {
	token, err := exts.NewViewerToken(testSecret, id, name, strings.ToUpper(name), time.Hour)
	require.NoError(e.t, err)
	return token
}

// do sends the request and decodes the body into out when it is given.
func (e *testEnv) do(method, path, token, body string, out any) int {
	e.t.Helper()

	var reader io.Reader
	if len(body) > 0 {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if len(body) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(e.t, err)
		require.NoError(e.t, jsoniter.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}
