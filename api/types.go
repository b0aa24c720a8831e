package api

import "encoding/json"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	ideaHandler   ideaHandler
	tagHandler    tagHandler
	authHandler   authHandler
	healthHandler healthHandler
}

// MessageResponse is the body of every error response and of delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ideaRequest is the body accepted by create and update. Tags is kept raw so
// that a non-array value can be reported instead of failing the whole decode.
type ideaRequest struct {
	IdeaName    *string         `json:"ideaName"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	Tags        json.RawMessage `json:"tags"`
}

type tagRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
