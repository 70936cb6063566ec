package service

import (
	"context"
	"strings"

	"Yatube/internal/model"
	"Yatube/internal/repository/database"

	"gorm.io/gorm"
)

type CommentService struct {
	repo     *database.CommentRepository
	postRepo *database.PostRepository
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		repo:     &database.CommentRepository{DB: db},
		postRepo: &database.PostRepository{DB: db},
	}
}

// CreateComment adds actor's comment to an existing post.
func (s *CommentService) CreateComment(ctx context.Context, actor *model.User, postID uint64, form CommentForm) (*model.Comment, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, notFound("post", err)
	}
	text := strings.TrimSpace(form.Text)
	if text == "" {
		return nil, &ValidationError{Fields: map[string]string{"text": msgRequired}}
	}
	c := &model.Comment{
		PostID:   post.ID,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Author = *actor
	return c, nil
}
