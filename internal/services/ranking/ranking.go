// Package ranking derives the 1-based ranking of a movie collection from
// personal ratings.
package ranking

import (
	"cmp"
	"slices"

	"topmovies/proj/internal/domain/models"
)

// Recompute returns a copy of movies ordered by descending rating with
// Ranking set to the 1-based position. Unrated movies sort after every rated
// one, equal ratings keep their input order.
func Recompute(movies []models.Movie) []models.Movie {
	ranked := slices.Clone(movies)
	slices.SortStableFunc(ranked, func(a, b models.Movie) int {
		return Compare(a.Rating, b.Rating)
	})
	for i := range ranked {
		position := i + 1
		ranked[i].Ranking = &position
	}
	return ranked
}

// Compare orders two ratings for a descending listing: it is negative when a
// ranks before b. A nil rating ranks last.
func Compare(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*b, *a)
}

// Changed reports the movies whose ranking in ranked differs from the one
// stored in current, keyed by ID.
func Changed(current, ranked []models.Movie) []models.Movie {
	stored := make(map[int]*int, len(current))
	for _, m := range current {
		stored[m.ID] = m.Ranking
	}
	var changed []models.Movie
	for _, m := range ranked {
		old, ok := stored[m.ID]
		if !ok || old == nil || *old != *m.Ranking {
			changed = append(changed, m)
		}
	}
	return changed
}
