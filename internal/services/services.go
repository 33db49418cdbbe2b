package services

import (
	"log/slog"

	"topmovies/proj/internal/services/catalog"
	"topmovies/proj/internal/services/movies"
)

type Services struct {
	Movies  *movies.MovieService
	Catalog *catalog.Workflow
}

func New(log *slog.Logger, storage movies.MoviesStorage, provider catalog.MetadataProvider) *Services {
	moviesService := movies.New(log, storage)
	return &Services{
		Movies:  moviesService,
		Catalog: catalog.New(log, provider, moviesService),
	}
}
