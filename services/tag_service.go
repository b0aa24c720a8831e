package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type TagInput struct {
	Name        string
	Description *string
}

type TagPatch struct {
	Name        *string
	Description *string
}

// TagService manages per-user tags. Name uniqueness is left to the store's
// unique index so concurrent creators cannot both succeed.
type TagService struct {
	tags   TagStore
	logger zerolog.Logger
}

func NewTagService(tags TagStore) *TagService {
	return &TagService{
		tags:   tags,
		logger: log.With().Str("service", "tagService").Logger(),
	}
}

func (s *TagService) List(ctx context.Context, userID uuid.UUID) ([]TagView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	tags, err := s.tags.FindByOwner(ctx, userID)
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	views := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, newTagView(tag))
	}
	return views, nil
}

func (s *TagService) Create(ctx context.Context, userID uuid.UUID, in TagInput) (*TagView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.InvalidArgument(msgTagNameRequired)
	}

	tag := &models.Tag{UserID: userID, Name: name}
	if in.Description != nil {
		tag.Description = *in.Description
	}

	if err := s.tags.Add(ctx, tag); err != nil {
		if errs.IsAlreadyExists(err) {
			return nil, errs.Conflict(msgTagDuplicate)
		}
		return nil, errs.Unexpected(err)
	}

	s.logger.Info().Stringer("tagID", tag.ID).Stringer("userID", userID).Msg("Tag created")

	view := newTagView(tag)
	return &view, nil
}

func (s *TagService) Get(ctx context.Context, userID uuid.UUID, rawID string) (*TagView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	id, ok := parseID(rawID)
	if !ok {
		return nil, errs.NotFound(msgTagNotOwned)
	}
	return s.reloadOwned(ctx, userID, id)
}

func (s *TagService) Update(ctx context.Context, userID uuid.UUID, rawID string, patch TagPatch) (*TagView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errs.InvalidArgument(msgTagNameEmpty)
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}

	id, ok := parseID(rawID)
	if !ok {
		return nil, errs.NotFound(msgTagNotOwned)
	}

	updated, err := s.tags.UpdateOwned(ctx, userID, id, fields)
	if err != nil {
		if errs.IsAlreadyExists(err) {
			return nil, errs.Conflict(msgTagDuplicate)
		}
		return nil, errs.Unexpected(err)
	}
	if !updated {
		return nil, errs.NotFound(msgTagNotOwned)
	}

	return s.reloadOwned(ctx, userID, id)
}

// Delete removes a tag. Ideas that reference it keep the dangling id.
func (s *TagService) Delete(ctx context.Context, userID uuid.UUID, rawID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	id, ok := parseID(rawID)
	if !ok {
		return errs.NotFound(msgTagNotOwned)
	}

	deleted, err := s.tags.DeleteOwned(ctx, userID, id)
	if err != nil {
		return errs.Unexpected(err)
	}
	if !deleted {
		return errs.NotFound(msgTagNotOwned)
	}

	s.logger.Info().Stringer("tagID", id).Stringer("userID", userID).Msg("Tag deleted")
	return nil
}

func (s *TagService) reloadOwned(ctx context.Context, userID, id uuid.UUID) (*TagView, error) {
	tag, err := s.tags.FindOwned(ctx, userID, id)
	if errs.IsRecordMissing(err) {
		return nil, errs.NotFound(msgTagNotOwned)
	}
	if err != nil {
		return nil, errs.Unexpected(err)
	}
	view := newTagView(tag)
	return &view, nil
}
