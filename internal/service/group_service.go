package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"Yatube/internal/model"
	"Yatube/internal/repository/database"

	"gorm.io/gorm"
)

const (
	maxGroupTitle = 200
	maxGroupSlug  = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// GroupService is the administration side of groups. No HTTP route reaches
// the write operations.
type GroupService struct {
	repo  *database.GroupRepository
	cache IndexCache
}

func NewGroupService(db *gorm.DB, cache IndexCache) *GroupService {
	return &GroupService{
		repo:  &database.GroupRepository{DB: db},
		cache: cache,
	}
}

func (s *GroupService) validate(ctx context.Context, form *GroupForm, exceptID uint64) error {
	form.Title = strings.TrimSpace(form.Title)
	form.Slug = strings.TrimSpace(form.Slug)
	verr := &ValidationError{}
	switch {
	case form.Title == "":
		verr.add("title", msgRequired)
	case len([]rune(form.Title)) > maxGroupTitle:
		verr.add("title", "Ensure this value has at most 200 characters.")
	}
	if form.Slug != "" {
		switch {
		case len(form.Slug) > maxGroupSlug:
			verr.add("slug", "Ensure this value has at most 50 characters.")
		case !slugPattern.MatchString(form.Slug):
			verr.add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
		default:
			taken, err := s.repo.SlugTaken(ctx, form.Slug, exceptID)
			if err != nil {
				return err
			}
			if taken {
				verr.add("slug", "Group with this slug already exists.")
			}
		}
	}
	return verr.orNil()
}

func (s *GroupService) CreateGroup(ctx context.Context, form GroupForm) (*model.Group, error) {
	if err := s.validate(ctx, &form, 0); err != nil {
		return nil, err
	}
	g := &model.Group{Title: form.Title, Slug: form.Slug, Description: form.Description}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, id uint64, form GroupForm) (*model.Group, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("group", err)
	}
	if err := s.validate(ctx, &form, id); err != nil {
		return nil, err
	}
	g.Title, g.Slug, g.Description = form.Title, form.Slug, form.Description
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return g, nil
}

// DeleteGroup removes the group; its posts stay with no group.
func (s *GroupService) DeleteGroup(ctx context.Context, id uint64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound("group", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.repo.List(ctx)
}

func (s *GroupService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("index cache invalidate err: %v", err)
	}
}
