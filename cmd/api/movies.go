package main

import (
	"fmt"
	"net/http"

	"topmovies/proj/internal/services/catalog"
)

type editMovieInput struct {
	Rating *float64 `json:"rating" schema:"rating" validate:"required,gte=0,lte=10"`
	Review *string  `json:"review" schema:"review" validate:"required,notblank,max=30"`
}

type deleteMovieInput struct {
	Action string `json:"action" schema:"action"`
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.services.Movies.List(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movies, "total": len(movies)}, "")
}

func (app *Application) getMovieByPosition(w http.ResponseWriter, r *http.Request) {
	position, ok := app.extractPositiveIntParam(w, r, "position")
	if !ok {
		return
	}
	movie, err := app.services.Movies.GetByPosition(r.Context(), position)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractPositiveIntParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) showEditMovie(w http.ResponseWriter, r *http.Request) {
	app.getMovie(w, r)
}

func (app *Application) editMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractPositiveIntParam(w, r, "id")
	if !ok {
		return
	}
	var input editMovieInput
	if !app.readValidInput(w, r, &input) {
		return
	}
	if _, err := app.services.Catalog.Edit(r.Context(), id, *input.Rating, *input.Review); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.SeeOther(w, r, "/")
}

func (app *Application) showDeleteMovie(w http.ResponseWriter, r *http.Request) {
	app.resolveDelete(w, r, catalog.DeleteActionNone)
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	var input deleteMovieInput
	if err := app.readInput(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	app.resolveDelete(w, r, catalog.DeleteAction(input.Action))
}

func (app *Application) resolveDelete(w http.ResponseWriter, r *http.Request, action catalog.DeleteAction) {
	id, ok := app.extractPositiveIntParam(w, r, "id")
	if !ok {
		return
	}
	outcome, movie, err := app.services.Catalog.ResolveDelete(r.Context(), id, action)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	switch outcome {
	case catalog.DeleteDeleted:
		app.Http.SeeOther(w, r, "/")
	case catalog.DeleteCancelled:
		app.Http.SeeOther(w, r, fmt.Sprintf("/movies/%d", id))
	default:
		app.Http.Ok(w, r, envelop{"state": outcome.String(), "movie": movie}, "Confirm with action=delete or go back with action=back")
	}
}
