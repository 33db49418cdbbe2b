package catalog

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"topmovies/proj/internal/domain/models"
	"topmovies/proj/internal/utils"
)

type AddState int

const (
	StateCollectingTitle AddState = iota
	StateSearching
	StateSelecting
	StateHydrating
	StateCreated
	StateFailed
)

func (s AddState) String() string {
	switch s {
	case StateCollectingTitle:
		return "collecting_title"
	case StateSearching:
		return "searching"
	case StateSelecting:
		return "selecting"
	case StateHydrating:
		return "hydrating"
	case StateCreated:
		return "created"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// AddFlow walks a single addition through search, selection and hydration.
// A flow lives for one request; between requests only the chosen external id
// is carried over, see Workflow.Resume.
type AddFlow struct {
	w          *Workflow
	state      AddState
	title      string
	candidates []models.Candidate
	movie      *models.Movie
	err        error
}

func (w *Workflow) NewAddFlow() *AddFlow {
	return &AddFlow{w: w, state: StateCollectingTitle}
}

// Resume returns a flow waiting for a selection whose candidates were shown
// by an earlier request.
func (w *Workflow) Resume() *AddFlow {
	return &AddFlow{w: w, state: StateSelecting}
}

func (f *AddFlow) State() AddState { return f.state }

func (f *AddFlow) Candidates() []models.Candidate { return f.candidates }

func (f *AddFlow) Movie() *models.Movie { return f.movie }

func (f *AddFlow) Err() error { return f.err }

func (f *AddFlow) fail(err error) error {
	f.state = StateFailed
	f.err = err
	return err
}

// Search looks the title up at the provider. An empty result is a valid,
// selectable outcome.
func (f *AddFlow) Search(ctx context.Context, title string) ([]models.Candidate, error) {
	const op = "catalog.AddFlow.Search"
	if f.state != StateCollectingTitle {
		return nil, ErrInvalidTransition
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	log := f.w.log.With("op", op, "title", title)
	f.title = title
	f.state = StateSearching
	candidates, err := f.w.provider.Search(ctx, title)
	if err != nil {
		log.Error("search failed", "errMsg", err.Error())
		return nil, f.fail(err)
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	f.candidates = candidates
	f.state = StateSelecting
	log.Info("candidates found", "count", len(candidates))
	return candidates, nil
}

// Select hydrates the chosen candidate and stores it with placeholder
// curation fields.
func (f *AddFlow) Select(ctx context.Context, externalID int) (*models.Movie, error) {
	const op = "catalog.AddFlow.Select"
	if f.state != StateSelecting {
		return nil, ErrInvalidTransition
	}
	log := f.w.log.With("op", op, "external_id", externalID)
	if f.candidates != nil && !f.isCandidate(externalID) {
		return nil, ErrUnknownCandidate
	}
	f.state = StateHydrating
	details, err := f.w.provider.GetDetails(ctx, externalID)
	if err != nil {
		log.Error("hydration failed", "errMsg", err.Error())
		return nil, f.fail(err)
	}
	if utf8.RuneCountInString(details.ImgURL) > models.ImgURLMaxLen {
		log.Error("poster url too long", "len", len(details.ImgURL))
		return nil, f.fail(fmt.Errorf("%w: poster url is longer than %d characters", ErrMalformedResponse, models.ImgURLMaxLen))
	}
	movie, err := f.w.movies.Create(ctx, newMovie(details))
	if err != nil {
		log.Warn("movie not created", "title", details.Title, "errMsg", err.Error())
		return nil, f.fail(err)
	}
	f.movie = movie
	f.state = StateCreated
	log.Info("movie created", "id", movie.ID, "title", movie.Title)
	return movie, nil
}

func (f *AddFlow) isCandidate(externalID int) bool {
	for _, c := range f.candidates {
		if c.ExternalID == externalID {
			return true
		}
	}
	return false
}

func newMovie(details *models.MovieDetails) *models.Movie {
	rating := 0.0
	ranking := 0
	review := ""
	return &models.Movie{
		Title:       details.Title,
		Year:        details.Year,
		Description: utils.Truncate(details.Description, models.DescriptionMaxLen),
		Rating:      &rating,
		Ranking:     &ranking,
		Review:      &review,
		ImgURL:      details.ImgURL,
	}
}
