package service

import (
	"context"
	"testing"

	"Yatube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_SetsAuthorAndGroup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")
	group := mustGroup(t, db, "g1", "test_group")

	withGroup, err := svc.CreatePost(ctx, leo, PostForm{Text: "hello", GroupID: &group.ID, Image: "posts/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, leo.ID, withGroup.AuthorID)
	assert.Equal(t, "leo", withGroup.Author.Username)
	require.NotNil(t, withGroup.GroupID)
	assert.Equal(t, group.ID, *withGroup.GroupID)
	assert.Equal(t, "posts/a.jpg", withGroup.Image)
	assert.False(t, withGroup.CreatedAt.IsZero())

	zero := uint64(0)
	noGroup, err := svc.CreatePost(ctx, leo, PostForm{Text: "  plain\t", GroupID: &zero})
	require.NoError(t, err)
	assert.Equal(t, "plain", noGroup.Text)
	assert.Nil(t, noGroup.GroupID)
	assert.Nil(t, noGroup.Group)
}

func TestCreatePost_Validation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")

	_, err := svc.CreatePost(ctx, nil, PostForm{Text: "anon"})
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.CreatePost(ctx, leo, PostForm{Text: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "text")

	missing := uint64(999)
	_, err = svc.CreatePost(ctx, leo, PostForm{Text: "ok", GroupID: &missing})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "group")
	assert.NotContains(t, verr.Fields, "text")

	var n int64
	require.NoError(t, db.Model(&model.Post{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdatePost_NonAuthorIsSilentlySkipped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")
	ann := mustUser(t, db, "ann")
	group := mustGroup(t, db, "g1", "test_group")
	post, err := svc.CreatePost(ctx, leo, PostForm{Text: "original", GroupID: &group.ID})
	require.NoError(t, err)

	got, err := svc.UpdatePost(ctx, ann, post.ID, PostForm{Text: "hijacked"})
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)

	stored, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Post.Text)
	require.NotNil(t, stored.Post.GroupID)
	assert.Equal(t, group.ID, *stored.Post.GroupID)
}

func TestUpdatePost_ByAuthor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")
	group := mustGroup(t, db, "g1", "test_group")
	post, err := svc.CreatePost(ctx, leo, PostForm{Text: "original", Image: "posts/a.jpg"})
	require.NoError(t, err)

	got, err := svc.UpdatePost(ctx, leo, post.ID, PostForm{Text: "  edited \n", GroupID: &group.ID})
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, "posts/a.jpg", got.Image)
	require.NotNil(t, got.Group)
	assert.Equal(t, "test_group", got.Group.Slug)
	assert.Equal(t, leo.ID, got.AuthorID)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))

	got, err = svc.UpdatePost(ctx, leo, post.ID, PostForm{Text: "new image", Image: "posts/b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "posts/b.jpg", got.Image)
	assert.Nil(t, got.GroupID)

	got, err = svc.UpdatePost(ctx, leo, post.ID, PostForm{Text: "no image", ClearImage: true})
	require.NoError(t, err)
	assert.Empty(t, got.Image)

	_, err = svc.UpdatePost(ctx, leo, post.ID, PostForm{Text: ""})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdatePost(ctx, leo, 999, PostForm{Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdatePost(ctx, nil, post.ID, PostForm{Text: "x"})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestEditForm(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")
	ann := mustUser(t, db, "ann")
	post := mustPosts(t, svc, leo, nil, 1)[0]

	_, editable, err := svc.EditForm(ctx, leo, post.ID)
	require.NoError(t, err)
	assert.True(t, editable)

	_, editable, err = svc.EditForm(ctx, ann, post.ID)
	require.NoError(t, err)
	assert.False(t, editable)

	_, _, err = svc.EditForm(ctx, leo, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGroupPosts_Scenario(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	auth := mustUser(t, db, "auth")
	group := mustGroup(t, db, "g1", "test_group")
	mustPosts(t, svc, auth, group, 15)

	second, err := svc.ListGroupPosts(ctx, "test_group", 2)
	require.NoError(t, err)
	assert.Equal(t, "g1", second.Group.Title)
	assert.Len(t, second.Page.Items, 5)
	assert.True(t, second.Page.HasPrevious)
	assert.False(t, second.Page.HasNext)

	_, err = svc.ListGroupPosts(ctx, "nonexistent", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPosts_PagesAndClamp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")
	mustPosts(t, svc, leo, nil, 15)

	first, err := svc.ListPosts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, "leo post 14", first.Items[0].Text)

	last, err := svc.ListPosts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)

	beyond, err := svc.ListPosts(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, last.Number, beyond.Number)
	require.Len(t, beyond.Items, 5)
	assert.Equal(t, last.Items[0].ID, beyond.Items[0].ID)
}

func TestListPosts_CacheInvalidatedOnWrite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cache := newMemCache()
	svc := NewPostService(db, cache, 10)
	leo := mustUser(t, db, "leo")
	mustPosts(t, svc, leo, nil, 1)

	first, err := svc.ListPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	_, err = svc.ListPosts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	mustPosts(t, svc, leo, nil, 1)
	fresh, err := svc.ListPosts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, fresh.Items, 2)
	assert.Equal(t, 1, cache.hits)
}

func TestProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")
	ann := mustUser(t, db, "ann")
	mustPosts(t, svc, leo, nil, 3)
	require.NoError(t, NewFollowService(db, 10).Follow(ctx, ann, "leo"))

	anon, err := svc.Profile(ctx, nil, "leo", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), anon.PostsCount)
	assert.False(t, anon.Following)
	assert.Equal(t, "leo", anon.Author.Username)

	follower, err := svc.Profile(ctx, ann, "leo", 1)
	require.NoError(t, err)
	assert.True(t, follower.Following)

	_, err = svc.Profile(ctx, nil, "ghost", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewPostService(db, nil, 10)
	leo := mustUser(t, db, "leo")
	posts := mustPosts(t, svc, leo, nil, 2)
	comments := NewCommentService(db)
	_, err := comments.CreateComment(ctx, leo, posts[0].ID, CommentForm{Text: "first"})
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, leo, posts[0].ID, CommentForm{Text: "second"})
	require.NoError(t, err)

	detail, err := svc.GetPost(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.PostsCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "first", detail.Comments[0].Text)

	_, err = svc.GetPost(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}
