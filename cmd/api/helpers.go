package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"topmovies/proj/internal/lib/decoder"
	"topmovies/proj/internal/lib/validator"
	"topmovies/proj/internal/services/catalog"
	"topmovies/proj/internal/services/movies"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const maxBodyBytes = 1_048_576 // 1MB

func (app *Application) extractPositiveIntParam(w http.ResponseWriter, r *http.Request, name string) (value int, extracted bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		app.Http.BadRequest(w, r, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	if value < 1 {
		app.Http.BadRequest(w, r, fmt.Sprintf("%s must be greater than zero", name))
		return 0, false
	}
	return value, true
}

// readValidInput fills dst from a JSON or form-encoded body and validates it.
// On failure the error response is already written.
func (app *Application) readValidInput(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.readInput(w, r, dst); err != nil {
		if fieldErrs := decoder.FieldErrors(err); fieldErrs != nil {
			app.Http.UnprocessableEntity(w, r, fieldErrs)
			return false
		}
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	if errs := validator.ValidateStruct(app.validator, dst); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return false
	}
	return true
}

func (app *Application) readInput(w http.ResponseWriter, r *http.Request, dst any) error {
	if render.GetRequestContentType(r) == render.ContentTypeJSON {
		return app.readJSON(w, r, dst)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("body contains badly-formed form data: %w", err)
	}
	return app.decoder.Decode(dst, r.PostForm)
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	src := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}

// handleServiceError maps service and provider errors to responses.
func (app *Application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var upstreamErr *catalog.UpstreamError
	switch {
	case errors.Is(err, movies.ErrMovieNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, movies.ErrMovieAlreadyExists):
		app.Http.Conflict(w, r, err.Error())
	case errors.Is(err, catalog.ErrEmptyTitle):
		app.Http.UnprocessableEntity(w, r, map[string]string{"title": "This field must not be blank"})
	case errors.Is(err, catalog.ErrUnknownCandidate), errors.Is(err, catalog.ErrInvalidTransition):
		app.Http.BadRequest(w, r, err.Error())
	case errors.As(err, &upstreamErr), errors.Is(err, catalog.ErrMalformedResponse):
		app.Http.BadGateway(w, r, err)
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
