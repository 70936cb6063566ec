package service

import (
	"context"
	"testing"

	"Yatube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedSessions []uint64

func (r *revokedSessions) DeleteUserToken(_ context.Context, userID uint64) error {
	*r = append(*r, userID)
	return nil
}

func TestRemoveAuthor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cache := newMemCache()
	posts := NewPostService(db, cache, 10)
	leo := mustUser(t, db, "leo")
	ann := mustUser(t, db, "ann")
	mustPosts(t, posts, leo, nil, 2)
	mustPosts(t, posts, ann, nil, 1)

	page, err := posts.ListPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	var revoked revokedSessions
	svc := NewUserService(db, cache, &revoked)
	require.NoError(t, svc.RemoveAuthor(ctx, "leo"))
	assert.Equal(t, revokedSessions{leo.ID}, revoked)

	page, err = posts.ListPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ann.ID, page.Items[0].AuthorID)

	var n int64
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", leo.ID).Count(&n).Error)
	assert.Zero(t, n)

	assert.ErrorIs(t, svc.RemoveAuthor(ctx, "leo"), ErrNotFound)
	assert.NoError(t, NewUserService(db, nil, nil).RemoveAuthor(ctx, "ann"))
}
