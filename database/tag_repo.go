package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindByOwner returns the tags of ownerID sorted by name
func (r *TagRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("name ASC").Find(&tags).Error
	return tags, errs.NewDatabaseError("find", "tags", err)
}

// FindOwned returns a tag only if ownerID owns it
func (r *TagRepo) FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "tag", err)
	}
	return &tag, nil
}

// CountOwned counts how many of ids belong to ownerID
func (r *TagRepo) CountOwned(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Count(&count).Error
	if err != nil {
		return 0, errs.NewDatabaseError("count", "tags", err)
	}
	return count, nil
}

// FindByIDs returns the tags that still exist among ids, in no particular order
func (r *TagRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, errs.NewDatabaseError("find", "tags", err)
}

// Add inserts a new tag. A duplicate (owner, name) pair is rejected by the
// unique index and surfaces as errs.ErrAlreadyExists.
func (r *TagRepo) Add(ctx context.Context, tag *models.Tag) error {
	return errs.NewDatabaseError("create", "tag", r.db.WithContext(ctx).Create(tag).Error)
}

// UpdateOwned writes the given columns on a tag owned by ownerID. It reports
// false when no such tag exists.
func (r *TagRepo) UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) (bool, error) {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return false, errs.NewDatabaseError("update", "tag", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteOwned removes a tag owned by ownerID. Ideas referencing it are left untouched.
func (r *TagRepo) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Tag{})
	if res.Error != nil {
		return false, errs.NewDatabaseError("delete", "tag", res.Error)
	}
	return res.RowsAffected > 0, nil
}
