package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/database"
	"github.com/rpupo63/ideku-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, auth *services.AuthService, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		ideaHandler:   newIdeaHandler(services.NewIdeaService(database.IdeaRepo(), database.TagRepo())),
		tagHandler:    newTagHandler(services.NewTagService(database.TagRepo())),
		authHandler:   newAuthHandler(auth),
		healthHandler: newHealthHandler(database, startupTime),
	}
}

// requestUserID returns the id put on the context by the auth middleware, or
// uuid.Nil when the route is not authenticated.
func requestUserID(r *http.Request) uuid.UUID {
	userID, err := ctxGetUserID(r.Context())
	if err != nil {
		return uuid.Nil
	}
	return userID
}
