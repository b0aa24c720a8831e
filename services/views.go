package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/models"
)

// IdeaView is the sanitized representation of an idea returned to clients.
type IdeaView struct {
	ID          uuid.UUID         `json:"id"`
	IdeaName    string            `json:"ideaName"`
	Description string            `json:"description"`
	Status      models.Status     `json:"status"`
	StatusInfo  models.StatusInfo `json:"statusInfo"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Tags        []TagRef          `json:"tags"`
	AssignedTo  *Assignee         `json:"assignedTo"`
}

// TagRef is a tag reference on an idea. Name is nil when the tag was deleted
// after being attached.
type TagRef struct {
	ID   uuid.UUID `json:"id"`
	Name *string   `json:"name"`
}

type Assignee struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username,omitempty"`
}

type TagView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type UserView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func newIdeaView(idea *models.Idea, tagNames map[uuid.UUID]string) IdeaView {
	tags := make([]TagRef, 0, len(idea.TagIDs))
	for _, id := range idea.TagIDs {
		ref := TagRef{ID: id}
		if name, ok := tagNames[id]; ok {
			ref.Name = &name
		}
		tags = append(tags, ref)
	}

	var assignee *Assignee
	if idea.AssignedToID != nil {
		assignee = &Assignee{ID: *idea.AssignedToID}
		if idea.AssignedTo != nil {
			assignee.Username = idea.AssignedTo.Username
		}
	}

	return IdeaView{
		ID:          idea.ID,
		IdeaName:    idea.IdeaName,
		Description: idea.Description,
		Status:      idea.Status,
		StatusInfo:  idea.Status.Info(),
		CreatedAt:   idea.CreatedAt,
		UpdatedAt:   idea.UpdatedAt,
		Tags:        tags,
		AssignedTo:  assignee,
	}
}

func newTagView(tag *models.Tag) TagView {
	return TagView{
		ID:          tag.ID,
		Name:        tag.Name,
		Description: tag.Description,
	}
}

func newUserView(user *models.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
	}
}
