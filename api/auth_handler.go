package api

import (
	"net/http"

	"github.com/rpupo63/ideku-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *services.AuthService
}

func newAuthHandler(auth *services.AuthService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
	}
}

// @Router /api/auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds services.Credentials
		if err := h.responder.DecodeJSON(r, &creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.auth.Register(r.Context(), creds)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatus(w, http.StatusCreated, user)
	}
}

// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds services.Credentials
		if err := h.responder.DecodeJSON(r, &creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		res, err := h.auth.Login(r.Context(), creds)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, res)
	}
}
