package main

import (
	"fmt"
	"net/http"
)

type searchMovieInput struct {
	Title string `json:"title" schema:"title" validate:"required,notblank,max=250"`
}

type findMovieInput struct {
	ID int `schema:"id"`
}

func (app *Application) showAddMovie(w http.ResponseWriter, r *http.Request) {
	flow := app.services.Catalog.NewAddFlow()
	app.Http.Ok(w, r, envelop{"state": flow.State().String()}, "")
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	var input searchMovieInput
	if !app.readValidInput(w, r, &input) {
		return
	}
	flow := app.services.Catalog.NewAddFlow()
	candidates, err := flow.Search(r.Context(), input.Title)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"state": flow.State().String(), "candidates": candidates}, "")
}

// findMovie hydrates the candidate chosen from a search and adds it to the
// collection, then sends the client on to rate it.
func (app *Application) findMovie(w http.ResponseWriter, r *http.Request) {
	var input findMovieInput
	if err := app.decoder.Decode(&input, r.URL.Query()); err != nil || input.ID < 1 {
		app.Http.BadRequest(w, r, "id query parameter must be a positive movie database id")
		return
	}
	movie, err := app.services.Catalog.Resume().Select(r.Context(), input.ID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.SeeOther(w, r, fmt.Sprintf("/edit/%d", movie.ID))
}
