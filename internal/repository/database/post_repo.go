package database

import (
	"context"

	"Yatube/internal/model"
	"Yatube/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	DB *gorm.DB
}

// Create stores the post and its post_created event in one transaction.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventPostCreated, post.AuthorID, post.ID, map[string]any{
			"group_id": post.GroupID,
		})
	})
}

// Update writes the editable fields only; author and pub date never change.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{ID: post.ID}).
			Select("text", "group_id", "image").
			Updates(map[string]any{
				"text":     post.Text,
				"group_id": post.GroupID,
				"image":    post.Image,
			}).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventPostUpdated, post.AuthorID, post.ID, map[string]any{
			"group_id": post.GroupID,
		})
	})
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	return &post, err
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&n).Error
	return n, err
}

// List returns the requested page of all posts, newest first.
func (r *PostRepository) List(ctx context.Context, number, size int) (pkg.Page[model.Post], error) {
	return r.page(ctx, func(db *gorm.DB) *gorm.DB { return db }, number, size)
}

func (r *PostRepository) ListByGroup(ctx context.Context, groupID uint64, number, size int) (pkg.Page[model.Post], error) {
	return r.page(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	}, number, size)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64, number, size int) (pkg.Page[model.Post], error) {
	return r.page(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	}, number, size)
}

// ListFeed returns posts of every author userID follows at query time.
func (r *PostRepository) ListFeed(ctx context.Context, userID uint64, number, size int) (pkg.Page[model.Post], error) {
	return r.page(ctx, func(db *gorm.DB) *gorm.DB {
		followed := db.Session(&gorm.Session{NewDB: true}).
			Model(&model.Follow{}).
			Select("author_id").
			Where("user_id = ?", userID)
		return db.Where("author_id IN (?)", followed)
	}, number, size)
}

// page counts the filtered set, clamps the page number and loads one window.
func (r *PostRepository) page(ctx context.Context, filter func(*gorm.DB) *gorm.DB, number, size int) (pkg.Page[model.Post], error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Scopes(filter).
		Count(&count).Error; err != nil {
		return pkg.Page[model.Post]{}, err
	}
	w := pkg.NewWindow(count, number, size)

	var list []model.Post
	if count > 0 {
		if err := r.DB.WithContext(ctx).
			Scopes(filter).
			Preload("Author").
			Preload("Group").
			Order("created_at DESC, id DESC").
			Offset(w.Offset).
			Limit(w.Limit).
			Find(&list).Error; err != nil {
			return pkg.Page[model.Post]{}, err
		}
	}
	return pkg.NewPage(list, count, w), nil
}
