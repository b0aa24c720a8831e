package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public and authenticated routes.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/healthz", handlers.healthHandler.health())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/ideas/user/{id}/completed", handlers.ideaHandler.listCompletedForUser())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/ideas", handlers.ideaHandler.listIdeas())
			r.Get("/ideas/completed", handlers.ideaHandler.listCompleted())
			r.Post("/ideas", handlers.ideaHandler.createIdea())
			r.Get("/ideas/{id}", handlers.ideaHandler.getIdea())
			r.Patch("/ideas/{id}", handlers.ideaHandler.updateIdea())
			r.Delete("/ideas/{id}", handlers.ideaHandler.deleteIdea())
			r.Post("/ideas/{id}/take", handlers.ideaHandler.takeIdea())
			r.Post("/ideas/{id}/release", handlers.ideaHandler.releaseIdea())
			r.Post("/ideas/{id}/complete", handlers.ideaHandler.completeIdea())

			r.Get("/tags", handlers.tagHandler.listTags())
			r.Post("/tags", handlers.tagHandler.createTag())
			r.Get("/tags/{id}", handlers.tagHandler.getTag())
			r.Patch("/tags/{id}", handlers.tagHandler.updateTag())
			r.Delete("/tags/{id}", handlers.tagHandler.deleteTag())
		})
	})
}
