package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.Http.Response(w, r, nil, "", http.StatusMethodNotAllowed)
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)

	router.Get("/healthcheck", app.healthcheck)
	router.Get("/", app.listMovies)
	router.Get("/{position}", app.getMovieByPosition)
	router.Get("/movies/{id}", app.getMovie)
	router.Route("/edit/{id}", func(r chi.Router) {
		r.Get("/", app.showEditMovie)
		r.Post("/", app.editMovie)
	})
	router.Route("/delete/{id}", func(r chi.Router) {
		r.Get("/", app.showDeleteMovie)
		r.Post("/", app.deleteMovie)
	})
	router.Get("/add", app.showAddMovie)
	router.Post("/add", app.searchMovies)
	router.Get("/find", app.findMovie)
	return router
}
