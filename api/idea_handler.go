package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ideaHandler struct {
	responder Responder
	logger    zerolog.Logger
	ideas     *services.IdeaService
}

func newIdeaHandler(ideas *services.IdeaService) ideaHandler {
	logger := log.With().Str("handlerName", "ideaHandler").Logger()

	return ideaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		ideas:     ideas,
	}
}

// listIdeas returns every idea owned by the caller, newest first.
// @Router /api/ideas [get]
func (h ideaHandler) listIdeas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ideas, err := h.ideas.ListOwned(r.Context(), requestUserID(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, ideas)
	}
}

// @Router /api/ideas/completed [get]
func (h ideaHandler) listCompleted() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ideas, err := h.ideas.ListCompletedOwned(r.Context(), requestUserID(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, ideas)
	}
}

// listCompletedForUser is public: anyone may see another user's finished ideas.
// @Router /api/ideas/user/{id}/completed [get]
func (h ideaHandler) listCompletedForUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ideas, err := h.ideas.ListCompletedForUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, ideas)
	}
}

// @Router /api/ideas [post]
func (h ideaHandler) createIdea() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)

		var req ideaRequest
		if err := h.responder.DecodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		in := services.IdeaInput{
			Description: req.Description,
			Status:      req.Status,
		}
		if req.IdeaName != nil {
			in.Name = *req.IdeaName
		}
		if !isJSONNull(req.Tags) {
			tagIDs, err := decodeTagIDs(req.Tags)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if tagIDs != nil {
				in.TagIDs = *tagIDs
			}
		}

		idea, err := h.ideas.Create(r.Context(), userID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatus(w, http.StatusCreated, idea)
	}
}

// @Router /api/ideas/{id} [get]
func (h ideaHandler) getIdea() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idea, err := h.ideas.GetOwned(r.Context(), requestUserID(r), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, idea)
	}
}

// updateIdea applies a partial update; absent fields are left untouched.
// @Router /api/ideas/{id} [patch]
func (h ideaHandler) updateIdea() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)

		var req ideaRequest
		if err := h.responder.DecodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tagIDs, err := decodeTagIDs(req.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		idea, err := h.ideas.Update(r.Context(), userID, chi.URLParam(r, "id"), services.IdeaPatch{
			Name:        req.IdeaName,
			Description: req.Description,
			Status:      req.Status,
			TagIDs:      tagIDs,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, idea)
	}
}

// @Router /api/ideas/{id} [delete]
func (h ideaHandler) deleteIdea() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.ideas.Delete(r.Context(), requestUserID(r), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, "Idea dihapus")
	}
}

// @Router /api/ideas/{id}/take [post]
func (h ideaHandler) takeIdea() http.HandlerFunc {
	return h.transition(h.ideas.Take)
}

// @Router /api/ideas/{id}/release [post]
func (h ideaHandler) releaseIdea() http.HandlerFunc {
	return h.transition(h.ideas.Release)
}

// @Router /api/ideas/{id}/complete [post]
func (h ideaHandler) completeIdea() http.HandlerFunc {
	return h.transition(h.ideas.Complete)
}

type transitionFunc func(ctx context.Context, userID uuid.UUID, rawID string) (*services.IdeaView, error)

func (h ideaHandler) transition(apply transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idea, err := apply(r.Context(), requestUserID(r), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, idea)
	}
}

// decodeTagIDs reads the optional "tags" member. It returns nil when the
// member was absent and an InvalidArgument when it is not an array of ids.
func decodeTagIDs(raw json.RawMessage) (*[]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil || ids == nil {
		return nil, errs.InvalidArgument(services.MsgTagsNotArray)
	}
	return &ids, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
