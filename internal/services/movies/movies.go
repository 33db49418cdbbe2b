package movies

import (
	"context"
	"errors"
	"log/slog"

	"topmovies/proj/internal/domain/models"
	"topmovies/proj/internal/services/ranking"
	"topmovies/proj/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	Update(ctx context.Context, id int, upd models.MovieUpdate) (*models.Movie, error)
	Delete(ctx context.Context, id int) error
	UpdateRankings(ctx context.Context, movies []models.Movie) error
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
}

func New(log *slog.Logger, storage MoviesStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

func (s *MovieService) Get(ctx context.Context, id int) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

// List returns the whole collection ranked by rating. Rankings that changed
// since the last pass are written back before returning.
func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op)
	movies, err := s.rerank(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movies, nil
}

// GetByPosition resolves a 1-based position in the freshly ranked listing.
func (s *MovieService) GetByPosition(ctx context.Context, position int) (*models.Movie, error) {
	const op = "movies.MovieService.GetByPosition"
	log := s.log.With("op", op, "position", position)
	movies, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if position < 1 || position > len(movies) {
		log.Info("no movie at position", "total", len(movies))
		return nil, ErrMovieNotFound
	}
	return &movies[position-1], nil
}

func (s *MovieService) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", movie.Title, "year", movie.Year)
	created, err := s.storage.Insert(ctx, movie)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return s.refresh(ctx, log, created), nil
}

// Rate sets the personal rating and review. Title, year, description and
// poster stay as hydrated.
func (s *MovieService) Rate(ctx context.Context, id int, rating float64, review string) (*models.Movie, error) {
	const op = "movies.MovieService.Rate"
	log := s.log.With("op", op, "id", id, "rating", rating)
	updated, err := s.storage.Update(ctx, id, models.MovieUpdate{Rating: &rating, Review: &review})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error("Error updating movie: " + err.Error())
		return nil, err
	}
	return s.refresh(ctx, log, updated), nil
}

func (s *MovieService) Delete(ctx context.Context, id int) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error("Error deleting movie: " + err.Error())
		return err
	}
	s.refresh(ctx, log, nil)
	return nil
}

func (s *MovieService) rerank(ctx context.Context) ([]models.Movie, error) {
	current, err := s.storage.List(ctx)
	if err != nil {
		return nil, err
	}
	ranked := ranking.Recompute(current)
	if err := s.storage.UpdateRankings(ctx, ranking.Changed(current, ranked)); err != nil {
		return nil, err
	}
	return ranked, nil
}

// refresh reranks the collection after a committed write and returns movie
// with its new ranking. A failed rerank only leaves rankings stale until the
// next listing, so it is logged rather than returned.
func (s *MovieService) refresh(ctx context.Context, log *slog.Logger, movie *models.Movie) *models.Movie {
	ranked, err := s.rerank(ctx)
	if err != nil {
		log.Warn("failed to recompute rankings", "errMsg", err.Error())
		return movie
	}
	if movie == nil {
		return nil
	}
	for i := range ranked {
		if ranked[i].ID == movie.ID {
			return &ranked[i]
		}
	}
	return movie
}
