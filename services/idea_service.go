package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// IdeaInput carries the fields accepted when creating an idea. Nil pointers
// mean "not supplied".
type IdeaInput struct {
	Name        string
	Description *string
	Status      *string
	TagIDs      []string
}

// IdeaPatch is a partial update. Only non-nil fields are validated and written.
type IdeaPatch struct {
	Name        *string
	Description *string
	Status      *string
	TagIDs      *[]string
}

// IdeaService owns the idea lifecycle: ownership checks, claiming and
// releasing, and the status transitions tied to them.
type IdeaService struct {
	ideas  IdeaStore
	tags   TagStore
	logger zerolog.Logger
}

func NewIdeaService(ideas IdeaStore, tags TagStore) *IdeaService {
	return &IdeaService{
		ideas:  ideas,
		tags:   tags,
		logger: log.With().Str("service", "ideaService").Logger(),
	}
}

func (s *IdeaService) ListOwned(ctx context.Context, userID uuid.UUID) ([]IdeaView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	ideas, err := s.ideas.FindByOwner(ctx, userID)
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	return s.render(ctx, ideas)
}

func (s *IdeaService) ListCompletedOwned(ctx context.Context, userID uuid.UUID) ([]IdeaView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.listCompleted(ctx, userID)
}

// ListCompletedForUser is the public lookup of another user's finished ideas.
func (s *IdeaService) ListCompletedForUser(ctx context.Context, targetUserID string) ([]IdeaView, error) {
	if strings.TrimSpace(targetUserID) == "" {
		return nil, errs.InvalidArgument(msgTargetUserRequired)
	}
	ownerID, ok := parseID(targetUserID)
	if !ok {
		return nil, errs.InvalidArgument(msgTargetUserInvalid)
	}
	return s.listCompleted(ctx, ownerID)
}

func (s *IdeaService) listCompleted(ctx context.Context, ownerID uuid.UUID) ([]IdeaView, error) {
	ideas, err := s.ideas.FindByOwnerAndStatus(ctx, ownerID, models.StatusDone)
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	return s.render(ctx, ideas)
}

func (s *IdeaService) Create(ctx context.Context, userID uuid.UUID, in IdeaInput) (*IdeaView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	name, err := validateIdeaName(in.Name, msgIdeaNameRequired)
	if err != nil {
		return nil, err
	}

	var description string
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
		description = *in.Description
	}

	status := models.StatusIdea
	if in.Status != nil && *in.Status != "" {
		if status, err = validateStatus(*in.Status); err != nil {
			return nil, err
		}
	}

	tagIDs, err := s.resolveTagIDs(ctx, userID, in.TagIDs)
	if err != nil {
		return nil, err
	}

	idea := &models.Idea{
		UserID:      userID,
		IdeaName:    name,
		Description: description,
		Status:      status,
		TagIDs:      tagIDs,
	}
	if err := s.ideas.Add(ctx, idea); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.logger.Info().
		Stringer("ideaID", idea.ID).
		Stringer("userID", userID).
		Msg("Idea created")

	return s.renderOne(ctx, idea)
}

func (s *IdeaService) GetOwned(ctx context.Context, userID uuid.UUID, rawID string) (*IdeaView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	id, ok := parseID(rawID)
	if !ok {
		return nil, errs.NotFound(msgIdeaNotOwned)
	}
	return s.reloadOwned(ctx, userID, id)
}

// Update applies patch to an idea owned by userID. Status is written as given
// without touching the assignee; take, release and complete are the only
// operations that keep the two in step.
func (s *IdeaService) Update(ctx context.Context, userID uuid.UUID, rawID string, patch IdeaPatch) (*IdeaView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	fields := make(map[string]any)

	if patch.Status != nil {
		status, err := validateStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		fields["status"] = status
	}

	if patch.Name != nil {
		name, err := validateIdeaName(*patch.Name, msgIdeaNameEmpty)
		if err != nil {
			return nil, err
		}
		fields["idea_name"] = name
	}

	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
		fields["description"] = *patch.Description
	}

	if patch.TagIDs != nil {
		tagIDs, err := s.resolveTagIDs(ctx, userID, *patch.TagIDs)
		if err != nil {
			return nil, err
		}
		fields["tag_ids"] = tagIDs
	}

	id, ok := parseID(rawID)
	if !ok {
		return nil, errs.NotFound(msgIdeaNotOwned)
	}

	if len(fields) == 0 {
		return s.reloadOwned(ctx, userID, id)
	}

	updated, err := s.ideas.UpdateOwned(ctx, userID, id, fields)
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	if !updated {
		return nil, errs.NotFound(msgIdeaNotOwned)
	}

	return s.reloadOwned(ctx, userID, id)
}

func (s *IdeaService) Delete(ctx context.Context, userID uuid.UUID, rawID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	id, ok := parseID(rawID)
	if !ok {
		return errs.NotFound(msgIdeaNotOwned)
	}

	deleted, err := s.ideas.DeleteOwned(ctx, userID, id)
	if err != nil {
		return errs.Unexpected(err)
	}
	if !deleted {
		return errs.NotFound(msgIdeaNotOwned)
	}

	s.logger.Info().Stringer("ideaID", id).Stringer("userID", userID).Msg("Idea deleted")
	return nil
}

// Take claims an idea for userID. Any authenticated user may take any idea,
// as long as nobody else holds it. Taking an idea one already holds is a no-op
// success.
func (s *IdeaService) Take(ctx context.Context, userID uuid.UUID, rawID string) (*IdeaView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	id, ok := parseID(rawID)
	if !ok {
		return nil, errs.NotFound(msgIdeaNotFound)
	}

	taken, err := s.ideas.Take(ctx, id, userID)
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	if !taken {
		exists, err := s.ideas.Exists(ctx, id)
		if err != nil {
			return nil, errs.Unexpected(err)
		}
		if !exists {
			return nil, errs.NotFound(msgIdeaNotFound)
		}
		return nil, errs.Conflict(msgIdeaTaken)
	}

	s.logger.Info().Stringer("ideaID", id).Stringer("userID", userID).Msg("Idea taken")
	return s.reload(ctx, id)
}

// Release hands a claimed idea back. Only the owner or the assignee may do so.
func (s *IdeaService) Release(ctx context.Context, userID uuid.UUID, rawID string) (*IdeaView, error) {
	return s.unassign(ctx, userID, rawID, models.StatusIdea, msgReleaseForbidden)
}

// Complete marks an idea done and clears its assignee. Only the owner or the
// assignee may do so.
func (s *IdeaService) Complete(ctx context.Context, userID uuid.UUID, rawID string) (*IdeaView, error) {
	return s.unassign(ctx, userID, rawID, models.StatusDone, msgCompleteForbidden)
}

func (s *IdeaService) unassign(ctx context.Context, userID uuid.UUID, rawID string, status models.Status, forbiddenMsg string) (*IdeaView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	id, ok := parseID(rawID)
	if !ok {
		return nil, errs.NotFound(msgIdeaNotFound)
	}

	changed, err := s.ideas.Unassign(ctx, id, userID, status)
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	if !changed {
		exists, err := s.ideas.Exists(ctx, id)
		if err != nil {
			return nil, errs.Unexpected(err)
		}
		if !exists {
			return nil, errs.NotFound(msgIdeaNotFound)
		}
		return nil, errs.Forbidden(forbiddenMsg)
	}

	s.logger.Info().
		Stringer("ideaID", id).
		Stringer("userID", userID).
		Str("status", string(status)).
		Msg("Idea unassigned")
	return s.reload(ctx, id)
}

// resolveTagIDs parses and de-duplicates raw ids and checks that every one of
// them names a tag owned by userID.
func (s *IdeaService) resolveTagIDs(ctx context.Context, userID uuid.UUID, raw []string) (datatypes.JSONSlice[uuid.UUID], error) {
	ids := make(datatypes.JSONSlice[uuid.UUID], 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, ok := parseID(r)
		if !ok {
			return nil, errs.InvalidArgument(msgTagUnresolvable)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return ids, nil
	}

	owned, err := s.tags.CountOwned(ctx, userID, ids)
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	if owned != int64(len(ids)) {
		return nil, errs.InvalidArgument(msgTagUnresolvable)
	}
	return ids, nil
}

func (s *IdeaService) reloadOwned(ctx context.Context, userID, id uuid.UUID) (*IdeaView, error) {
	idea, err := s.ideas.FindOwned(ctx, userID, id)
	if errs.IsRecordMissing(err) {
		return nil, errs.NotFound(msgIdeaNotOwned)
	}
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	return s.renderOne(ctx, idea)
}

func (s *IdeaService) reload(ctx context.Context, id uuid.UUID) (*IdeaView, error) {
	idea, err := s.ideas.FindByID(ctx, id)
	if errs.IsRecordMissing(err) {
		return nil, errs.NotFound(msgIdeaNotFound)
	}
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	return s.renderOne(ctx, idea)
}

func (s *IdeaService) renderOne(ctx context.Context, idea *models.Idea) (*IdeaView, error) {
	views, err := s.render(ctx, []*models.Idea{idea})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// render resolves tag names for all ideas with a single lookup.
func (s *IdeaService) render(ctx context.Context, ideas []*models.Idea) ([]IdeaView, error) {
	var tagIDs []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, idea := range ideas {
		for _, id := range idea.TagIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				tagIDs = append(tagIDs, id)
			}
		}
	}

	tagNames := make(map[uuid.UUID]string, len(tagIDs))
	if len(tagIDs) > 0 {
		tags, err := s.tags.FindByIDs(ctx, tagIDs)
		if err != nil {
			return nil, errs.Unexpected(err)
		}
		for _, tag := range tags {
			tagNames[tag.ID] = tag.Name
		}
	}

	views := make([]IdeaView, 0, len(ideas))
	for _, idea := range ideas {
		views = append(views, newIdeaView(idea, tagNames))
	}
	return views, nil
}
