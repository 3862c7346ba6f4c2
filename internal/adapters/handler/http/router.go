package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	log *slog.Logger,
	jwtSecret []byte,
	authHandler *AuthHandler,
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
	bookmarkHandler *BookmarkHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(Authenticator(jwtSecret))
				r.Get("/me", authHandler.Me)
				r.Post("/upload-image", authHandler.UploadImage)
			})
		})

		r.Route("/polls", func(r chi.Router) {
			r.Use(Authenticator(jwtSecret))

			r.Post("/", pollHandler.CreatePoll)
			r.Get("/", pollHandler.ListPolls)
			r.Get("/voted", pollHandler.ListVotedPolls)
			r.Get("/bookmarked", bookmarkHandler.ListBookmarkedPolls)

			r.Get("/{id}", pollHandler.GetPoll)
			r.Delete("/{id}", pollHandler.DeletePoll)
			r.Post("/{id}/vote", voteHandler.VoteOnPoll)
			r.Post("/{id}/close", pollHandler.ClosePoll)
			r.Post("/{id}/bookmark", bookmarkHandler.ToggleBookmark)
		})
	})

	return r
}
