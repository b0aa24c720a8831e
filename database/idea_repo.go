package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/models"
	"gorm.io/gorm"
)

type IdeaRepo struct {
	db *gorm.DB
}

func NewIdeaRepo(db *gorm.DB) *IdeaRepo {
	return &IdeaRepo{db}
}

func (r *IdeaRepo) withAssignee(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("AssignedTo")
}

// FindByOwner returns all ideas owned by ownerID, newest first
func (r *IdeaRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Idea, error) {
	var ideas []*models.Idea
	err := r.withAssignee(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&ideas).Error
	return ideas, errs.NewDatabaseError("find", "ideas", err)
}

// FindByOwnerAndStatus returns ideas owned by ownerID in the given status, most recently updated first
func (r *IdeaRepo) FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status models.Status) ([]*models.Idea, error) {
	var ideas []*models.Idea
	err := r.withAssignee(ctx).
		Where("user_id = ? AND status = ?", ownerID, status).
		Order("updated_at DESC").
		Find(&ideas).Error
	return ideas, errs.NewDatabaseError("find", "ideas", err)
}

// FindByID returns an idea regardless of owner
func (r *IdeaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Idea, error) {
	var idea models.Idea
	if err := r.withAssignee(ctx).First(&idea, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "idea", err)
	}
	return &idea, nil
}

// FindOwned returns an idea only if ownerID owns it
func (r *IdeaRepo) FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Idea, error) {
	var idea models.Idea
	if err := r.withAssignee(ctx).First(&idea, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "idea", err)
	}
	return &idea, nil
}

// Exists reports whether an idea with the given id is stored
func (r *IdeaRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Idea{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errs.NewDatabaseError("count", "idea", err)
	}
	return count > 0, nil
}

// Add inserts a new idea into the database
func (r *IdeaRepo) Add(ctx context.Context, idea *models.Idea) error {
	return errs.NewDatabaseError("create", "idea", r.db.WithContext(ctx).Create(idea).Error)
}

// UpdateOwned writes the given columns on an idea owned by ownerID. It reports
// false when no such idea exists.
func (r *IdeaRepo) UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) (bool, error) {
	return r.updateWhere(ctx, "update", fields, "id = ? AND user_id = ?", id, ownerID)
}

// Take claims an idea for userID in a single conditional update. The claim
// succeeds only while the idea is unassigned or already assigned to userID.
func (r *IdeaRepo) Take(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	fields := map[string]any{
		"assigned_to_id": userID,
		"status":         models.StatusInProgress,
	}
	return r.updateWhere(ctx, "take", fields,
		"id = ? AND (assigned_to_id IS NULL OR assigned_to_id = ?)", id, userID)
}

// Unassign clears the assignee and moves the idea to status, provided actorID
// is the owner or the current assignee.
func (r *IdeaRepo) Unassign(ctx context.Context, id, actorID uuid.UUID, status models.Status) (bool, error) {
	fields := map[string]any{
		"assigned_to_id": nil,
		"status":         status,
	}
	return r.updateWhere(ctx, "unassign", fields,
		"id = ? AND (user_id = ? OR assigned_to_id = ?)", id, actorID, actorID)
}

func (r *IdeaRepo) updateWhere(ctx context.Context, op string, fields map[string]any, query string, args ...any) (bool, error) {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Idea{}).Where(query, args...).Updates(fields)
	if res.Error != nil {
		return false, errs.NewDatabaseError(op, "idea", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteOwned removes an idea owned by ownerID. It reports false when no such idea exists.
func (r *IdeaRepo) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Idea{})
	if res.Error != nil {
		return false, errs.NewDatabaseError("delete", "idea", res.Error)
	}
	return res.RowsAffected > 0, nil
}
