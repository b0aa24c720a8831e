package services

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/models"
)

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errs.Unauthenticated(msgUnauthenticated)
	}
	return nil
}

// validateIdeaName trims name and enforces the 1..100 character bound.
func validateIdeaName(name, emptyMsg string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.InvalidArgument(emptyMsg)
	}
	if utf8.RuneCountInString(name) > models.MaxIdeaNameLength {
		return "", errs.InvalidArgument(msgIdeaNameTooLong)
	}
	return name, nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > models.MaxIdeaDescriptionLength {
		return errs.InvalidArgument(msgDescriptionTooLong)
	}
	return nil
}

func validateStatus(raw string) (models.Status, error) {
	status := models.Status(raw)
	if !status.Valid() {
		return "", errs.InvalidArgument(msgStatusInvalid)
	}
	return status, nil
}

// parseID turns a path id into a uuid. A malformed id cannot match any
// record, so callers treat !ok as not found.
func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
