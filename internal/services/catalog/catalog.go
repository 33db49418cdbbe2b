// Package catalog orchestrates the multi-step flows of the collection: adding
// a movie from the metadata provider, editing its rating and deleting it.
package catalog

import (
	"context"
	"log/slog"

	"topmovies/proj/internal/domain/models"
)

type MetadataProvider interface {
	Search(ctx context.Context, query string) ([]models.Candidate, error)
	GetDetails(ctx context.Context, externalID int) (*models.MovieDetails, error)
}

type MovieCollection interface {
	Get(ctx context.Context, id int) (*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Rate(ctx context.Context, id int, rating float64, review string) (*models.Movie, error)
	Delete(ctx context.Context, id int) error
}

type Workflow struct {
	log      *slog.Logger
	provider MetadataProvider
	movies   MovieCollection
}

func New(log *slog.Logger, provider MetadataProvider, movies MovieCollection) *Workflow {
	return &Workflow{
		log:      log,
		provider: provider,
		movies:   movies,
	}
}

// Edit persists a validated rating and review.
func (w *Workflow) Edit(ctx context.Context, id int, rating float64, review string) (*models.Movie, error) {
	return w.movies.Rate(ctx, id, rating, review)
}

type DeleteAction string

const (
	DeleteActionNone   DeleteAction = ""
	DeleteActionDelete DeleteAction = "delete"
	DeleteActionBack   DeleteAction = "back"
)

type DeleteOutcome int

const (
	DeleteConfirming DeleteOutcome = iota
	DeleteDeleted
	DeleteCancelled
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteDeleted:
		return "deleted"
	case DeleteCancelled:
		return "cancelled"
	default:
		return "confirming"
	}
}

// ResolveDelete moves the delete flow out of Confirming according to action.
// Without a decisive action the movie is returned for confirmation.
func (w *Workflow) ResolveDelete(ctx context.Context, id int, action DeleteAction) (DeleteOutcome, *models.Movie, error) {
	const op = "catalog.Workflow.ResolveDelete"
	log := w.log.With("op", op, "id", id, "action", action)
	switch action {
	case DeleteActionDelete:
		if err := w.movies.Delete(ctx, id); err != nil {
			return DeleteConfirming, nil, err
		}
		log.Info("movie deleted")
		return DeleteDeleted, nil, nil
	case DeleteActionBack:
		return DeleteCancelled, nil, nil
	default:
		movie, err := w.movies.Get(ctx, id)
		if err != nil {
			return DeleteConfirming, nil, err
		}
		return DeleteConfirming, movie, nil
	}
}
