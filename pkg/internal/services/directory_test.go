package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAccountUpserts(t *testing.T) {
	db := newTestDB(t)
	directory := NewDirectory(db)
	ctx := context.Background()

	account, err := directory.EnsureAccount(ctx, 7, "leo", "Leo")
	require.NoError(t, err)
	assert.EqualValues(t, 7, account.ID)

	account, err = directory.EnsureAccount(ctx, 7, "leo", "Leo the Second")
	require.NoError(t, err)
	assert.Equal(t, "Leo the Second", account.Nick)

	found, err := directory.GetAccountByName(ctx, "leo")
	require.NoError(t, err)
	assert.EqualValues(t, 7, found.ID)

	_, err = directory.EnsureAccount(ctx, 0, "nobody", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = directory.EnsureAccount(ctx, 8, " ", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = directory.GetAccount(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = directory.GetAccountByName(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewGroup(t *testing.T) {
	db := newTestDB(t)
	directory := NewDirectory(db)
	ctx := context.Background()

	group, err := directory.NewGroup(ctx, "Cats", "Cats_and-More", "All about cats")
	require.NoError(t, err)
	assert.Equal(t, "cats_and-more", group.Slug)

	_, err = directory.NewGroup(ctx, "Cats again", "cats_and-more", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = directory.NewGroup(ctx, "", "empty-title", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = directory.NewGroup(ctx, "Spaces", "has spaces", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = directory.NewGroup(ctx, "Blank", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	found, err := directory.GetGroupBySlug(ctx, "cats_and-more")
	require.NoError(t, err)
	assert.Equal(t, group.ID, found.ID)
	_, err = directory.GetGroupBySlug(ctx, "dogs")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGroups(t *testing.T) {
	db := newTestDB(t)
	directory := NewDirectory(db)
	ctx := context.Background()

	for _, slug := range []string{"c", "a", "b"} {
		seedGroup(t, db, slug)
	}

	groups, err := directory.ListGroups(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "a", groups[0].Slug)

	groups, err = directory.ListGroups(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "b", groups[0].Slug)
}
