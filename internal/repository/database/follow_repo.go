package database

import (
	"context"

	"Yatube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

// Follow is an atomic get-or-create on the (user_id, author_id) pair. created
// is true only when this call inserted the row; the follow event is recorded
// in that case only.
func (r *FollowRepository) Follow(ctx context.Context, userID, authorID uint64) (rel *model.Follow, created bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.Follow{UserID: userID, AuthorID: authorID}
		res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0

		var existing model.Follow
		if err := tx.Where("user_id = ? AND author_id = ?", userID, authorID).
			First(&existing).Error; err != nil {
			return err
		}
		rel = &existing
		if !created {
			return nil
		}
		return insertOutbox(tx, model.EventFollow, userID, authorID, nil)
	})
	return rel, created, err
}

// Unfollow deletes the pair. It returns gorm.ErrRecordNotFound when there
// was nothing to delete.
func (r *FollowRepository) Unfollow(ctx context.Context, userID, authorID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND author_id = ?", userID, authorID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return insertOutbox(tx, model.EventUnfollow, userID, authorID, nil)
	})
}

func (r *FollowRepository) IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFollowings returns the ids of the authors userID follows.
func (r *FollowRepository) ListFollowings(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("author_id", &ids).Error
	return ids, err
}
