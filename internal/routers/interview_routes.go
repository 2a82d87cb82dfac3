package routers

import (
	"github.com/go-chi/chi/v5"

	"interviewprep/api/internal/handlers"
	"interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
)

func AuthRoutes(router *chi.Mux, auth *middleware.Authenticator, authHandler *handlers.AuthHandler) {
	router.With(auth.RequireAuth).Get("/auth/me", authHandler.Me)
}

// InterviewRoutes exposes the catalogue. Reads accept anonymous callers so
// templates stay public.
func InterviewRoutes(router *chi.Mux, auth *middleware.Authenticator, interviewHandler *handlers.InterviewHandler) {
	router.Route("/interview", func(r chi.Router) {
		r.With(auth.OptionalAuth).Get("/", interviewHandler.ListInterviews)
		r.With(auth.OptionalAuth).Get("/{id}", interviewHandler.GetInterview)
		r.With(auth.RequireAuth, middleware.ValidateRequest[*models.CreateInterviewRequest]()).Post("/", interviewHandler.CreateInterview)
	})
}

func SessionRoutes(router *chi.Mux, auth *middleware.Authenticator, sessionHandler *handlers.SessionHandler) {
	router.Route("/interview-session", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Post("/start/{interviewId}", sessionHandler.StartSession)
		r.With(middleware.ValidateRequest[*models.SubmitSessionRequest]()).Post("/submit/{interviewId}", sessionHandler.SubmitSession)
		r.Get("/results/{interviewId}", sessionHandler.GetResults)
		r.Get("/{interviewId}", sessionHandler.GetSession)
	})
}
