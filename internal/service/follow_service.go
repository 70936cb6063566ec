package service

import (
	"context"

	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/database"

	"gorm.io/gorm"
)

type FollowService struct {
	repo     *database.FollowRepository
	userRepo *database.UserRepository
	postRepo *database.PostRepository
	perPage  int
}

func NewFollowService(db *gorm.DB, perPage int) *FollowService {
	if perPage <= 0 {
		perPage = pkg.DefaultPageSize
	}
	return &FollowService{
		repo:     &database.FollowRepository{DB: db},
		userRepo: &database.UserRepository{DB: db},
		postRepo: &database.PostRepository{DB: db},
		perPage:  perPage,
	}
}

// Follow subscribes actor to username. Following yourself is ignored and
// repeated calls keep a single row.
func (s *FollowService) Follow(ctx context.Context, actor *model.User, username string) error {
	if actor == nil {
		return ErrAuthRequired
	}
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return notFound("author "+username, err)
	}
	if author.ID == actor.ID {
		return nil
	}
	_, _, err = s.repo.Follow(ctx, actor.ID, author.ID)
	return err
}

// Unfollow fails with ErrNotFound for an unknown author and for a missing follow.
func (s *FollowService) Unfollow(ctx context.Context, actor *model.User, username string) error {
	if actor == nil {
		return ErrAuthRequired
	}
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return notFound("author "+username, err)
	}
	return notFound("follow", s.repo.Unfollow(ctx, actor.ID, author.ID))
}

func (s *FollowService) IsFollowing(ctx context.Context, actor, author *model.User) (bool, error) {
	if actor == nil || author == nil {
		return false, nil
	}
	return s.repo.IsFollowing(ctx, actor.ID, author.ID)
}

// Feed returns posts of the authors actor follows right now, newest first.
func (s *FollowService) Feed(ctx context.Context, actor *model.User, page int) (pkg.Page[model.Post], error) {
	if actor == nil {
		return pkg.Page[model.Post]{}, ErrAuthRequired
	}
	return s.postRepo.ListFeed(ctx, actor.ID, page, s.perPage)
}

func (s *FollowService) Followings(ctx context.Context, actor *model.User) ([]string, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	ids, err := s.repo.ListFollowings(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Username
	}
	names := make([]string, 0, len(users))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}
