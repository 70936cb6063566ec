package service

import (
	"context"
	"errors"
	"log"

	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/database"

	"gorm.io/gorm"
)

// IndexCache caches pages of the main listing. Implemented over Redis.
type IndexCache interface {
	Get(ctx context.Context, number, size int) (pkg.Page[model.Post], bool, error)
	Set(ctx context.Context, number, size int, page pkg.Page[model.Post]) error
	Invalidate(ctx context.Context) error
}

type GroupPage struct {
	Group *model.Group         `json:"group"`
	Page  pkg.Page[model.Post] `json:"page"`
}

type ProfilePage struct {
	Author     *model.User          `json:"author"`
	Page       pkg.Page[model.Post] `json:"page"`
	PostsCount int64                `json:"posts_count"`
	Following  bool                 `json:"following"`
}

type PostDetail struct {
	Post       *model.Post     `json:"post"`
	Comments   []model.Comment `json:"comments"`
	PostsCount int64           `json:"posts_count"`
}

type PostService struct {
	repo      *database.PostRepository
	groupRepo *database.GroupRepository
	userRepo  *database.UserRepository
	follow    *database.FollowRepository
	comments  *database.CommentRepository
	cache     IndexCache
	perPage   int
}

// NewPostService wires the post queries and commands. cache may be nil.
func NewPostService(db *gorm.DB, cache IndexCache, perPage int) *PostService {
	if perPage <= 0 {
		perPage = pkg.DefaultPageSize
	}
	return &PostService{
		repo:      &database.PostRepository{DB: db},
		groupRepo: &database.GroupRepository{DB: db},
		userRepo:  &database.UserRepository{DB: db},
		follow:    &database.FollowRepository{DB: db},
		comments:  &database.CommentRepository{DB: db},
		cache:     cache,
		perPage:   perPage,
	}
}

func (s *PostService) ListPosts(ctx context.Context, page int) (pkg.Page[model.Post], error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, page, s.perPage)
		if err != nil {
			log.Printf("index cache get err: %v", err)
		} else if ok {
			return cached, nil
		}
	}
	res, err := s.repo.List(ctx, page, s.perPage)
	if err != nil {
		return res, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, page, s.perPage, res); err != nil {
			log.Printf("index cache set err: %v", err)
		}
	}
	return res, nil
}

func (s *PostService) ListGroupPosts(ctx context.Context, slug string, page int) (*GroupPage, error) {
	group, err := s.groupRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFound("group "+slug, err)
	}
	res, err := s.repo.ListByGroup(ctx, group.ID, page, s.perPage)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Group: group, Page: res}, nil
}

// Profile lists the author's posts. actor may be nil.
func (s *PostService) Profile(ctx context.Context, actor *model.User, username string, page int) (*ProfilePage, error) {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound("author "+username, err)
	}
	res, err := s.repo.ListByAuthor(ctx, author.ID, page, s.perPage)
	if err != nil {
		return nil, err
	}
	out := &ProfilePage{Author: author, Page: res, PostsCount: res.Count}
	if actor != nil {
		if out.Following, err = s.follow.IsFollowing(ctx, actor.ID, author.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint64) (*PostDetail, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("post", err)
	}
	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, PostsCount: count}, nil
}

func (s *PostService) validate(ctx context.Context, form *PostForm) error {
	form.normalize()
	verr := &ValidationError{}
	if form.Text == "" {
		verr.add("text", msgRequired)
	}
	if form.GroupID != nil {
		_, err := s.groupRepo.FindByID(ctx, *form.GroupID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			verr.add("group", msgInvalidChoice)
		case err != nil:
			return err
		}
	}
	return verr.orNil()
}

// CreatePost publishes a post authored by actor.
func (s *PostService) CreatePost(ctx context.Context, actor *model.User, form PostForm) (*model.Post, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if err := s.validate(ctx, &form); err != nil {
		return nil, err
	}
	post := &model.Post{
		Text:     form.Text,
		AuthorID: actor.ID,
		GroupID:  form.GroupID,
		Image:    form.Image,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.FindByID(ctx, post.ID)
}

// UpdatePost edits text, group and image. The stored image survives an edit
// that carries none unless ClearImage is set. A non-author gets the post back
// untouched and no error.
func (s *PostService) UpdatePost(ctx context.Context, actor *model.User, id uint64, form PostForm) (*model.Post, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("post", err)
	}
	if post.AuthorID != actor.ID {
		return post, nil
	}
	if err := s.validate(ctx, &form); err != nil {
		return nil, err
	}
	post.Text = form.Text
	post.GroupID = form.GroupID
	switch {
	case form.Image != "":
		post.Image = form.Image
	case form.ClearImage:
		post.Image = ""
	}
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.FindByID(ctx, id)
}

func (s *PostService) EditForm(ctx context.Context, actor *model.User, id uint64) (*model.Post, bool, error) {
	if actor == nil {
		return nil, false, ErrAuthRequired
	}
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, notFound("post", err)
	}
	return post, post.AuthorID == actor.ID, nil
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("index cache invalidate err: %v", err)
	}
}
