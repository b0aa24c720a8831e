package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/models"
)

// IdeaStore is the persistence the idea lifecycle runs on. Take and Unassign
// must evaluate their predicate and apply the change in one statement.
type IdeaStore interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Idea, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status models.Status) ([]*models.Idea, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Idea, error)
	FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Idea, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Add(ctx context.Context, idea *models.Idea) error
	UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) (bool, error)
	Take(ctx context.Context, id, userID uuid.UUID) (bool, error)
	Unassign(ctx context.Context, id, actorID uuid.UUID, status models.Status) (bool, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

// TagStore persists tags. Add and UpdateOwned must reject duplicate
// (owner, name) pairs atomically, reporting errs.ErrAlreadyExists.
type TagStore interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Tag, error)
	FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Tag, error)
	CountOwned(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Tag, error)
	Add(ctx context.Context, tag *models.Tag) error
	UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) (bool, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
}
