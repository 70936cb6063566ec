package service

import (
	"context"
	"log"

	"Yatube/internal/repository/database"

	"gorm.io/gorm"
)

type SessionRevoker interface {
	DeleteUserToken(ctx context.Context, userID uint64) error
}

// UserService removes authors on behalf of the identity service. Users are
// created elsewhere.
type UserService struct {
	repo     *database.UserRepository
	cache    IndexCache
	sessions SessionRevoker
}

func NewUserService(db *gorm.DB, cache IndexCache, sessions SessionRevoker) *UserService {
	return &UserService{
		repo:     &database.UserRepository{DB: db},
		cache:    cache,
		sessions: sessions,
	}
}

// RemoveAuthor deletes username with their posts, comments and follows, then
// drops their session.
func (s *UserService) RemoveAuthor(ctx context.Context, username string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return notFound("author "+username, err)
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("index cache invalidate err: %v", err)
		}
	}
	if s.sessions != nil {
		if err := s.sessions.DeleteUserToken(ctx, user.ID); err != nil {
			log.Printf("delete session of user %d err: %v", user.ID, err)
		}
	}
	return nil
}
