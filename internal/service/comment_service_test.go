package service

import (
	"context"
	"testing"

	"Yatube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	leo := mustUser(t, db, "leo")
	ann := mustUser(t, db, "ann")
	post := mustPosts(t, NewPostService(db, nil, 10), leo, nil, 1)[0]
	svc := NewCommentService(db)

	c, err := svc.CreateComment(ctx, ann, post.ID, CommentForm{Text: " nice \n"})
	require.NoError(t, err)
	assert.Equal(t, "nice", c.Text)
	assert.Equal(t, ann.ID, c.AuthorID)
	assert.Equal(t, post.ID, c.PostID)
	assert.Equal(t, "ann", c.Author.Username)
	assert.False(t, c.CreatedAt.IsZero())

	_, err = svc.CreateComment(ctx, ann, post.ID, CommentForm{Text: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgRequired, verr.Fields["text"])

	_, err = svc.CreateComment(ctx, nil, post.ID, CommentForm{Text: "guest"})
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.CreateComment(ctx, ann, 999, CommentForm{Text: "lost"})
	assert.ErrorIs(t, err, ErrNotFound)

	// guests are sent to log in even when the post is missing
	_, err = svc.CreateComment(ctx, nil, 999, CommentForm{Text: "lost"})
	assert.ErrorIs(t, err, ErrAuthRequired)

	var n int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
