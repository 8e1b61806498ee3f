package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var accountSeq atomic.Uint32

// newTestDB opens a fresh in-memory database. A single connection keeps every query on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	raw, err := db.DB()
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	require.NoError(t, database.RunMigration(db))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, name string) models.Account {
	t.Helper()

	id := uint(accountSeq.Add(1))
	account, err := NewDirectory(db).EnsureAccount(context.Background(), id, name, fmt.Sprintf("Nick of %s", name))
	require.NoError(t, err)
	return account
}

func seedGroup(t *testing.T, db *gorm.DB, slug string) models.Group {
	t.Helper()

	group, err := NewDirectory(db).NewGroup(context.Background(), "Group "+slug, slug, "")
	require.NoError(t, err)
	return group
}

func seedPost(t *testing.T, db *gorm.DB, author models.Account, text string, group *models.Group) models.Post {
	t.Helper()

	fields := models.PostFields{Text: text}
	if group != nil {
		fields.GroupID = &group.ID
	}
	post, err := NewPostRepository(db).NewPost(context.Background(), author.ID, fields)
	require.NoError(t, err)
	return post
}

func postIDs(posts []models.Post) []uint {
	out := make([]uint, len(posts))
	for i, item := range posts {
		out[i] = item.ID
	}
	return out
}
