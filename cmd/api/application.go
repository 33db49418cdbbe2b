package main

import (
	"log/slog"
	"sync"

	"topmovies/proj/internal/config"
	"topmovies/proj/internal/lib/decoder"
	"topmovies/proj/internal/lib/validator"
	"topmovies/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	validator *govalidator.Validate
	decoder   *decoder.FormDecoder
	services  *services.Services

	// done is closed on shutdown to stop middleware housekeeping.
	done     chan struct{}
	doneOnce sync.Once
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services) *Application {
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: validator.New(),
		decoder:   decoder.New(),
		services:  services,
		done:      make(chan struct{}),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}

// shutdown stops the goroutines started by routes. It is safe to call more
// than once.
func (app *Application) shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}
