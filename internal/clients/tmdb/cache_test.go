package tmdb

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"topmovies/proj/internal/domain/models"
	"topmovies/proj/internal/services/catalog"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	searches int
	details  int
	err      error
}

func (p *countingProvider) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	p.searches++
	if p.err != nil {
		return nil, p.err
	}
	return []models.Candidate{{ExternalID: 27205, Title: "Inception", Year: 2010}}, nil
}

func (p *countingProvider) GetDetails(ctx context.Context, externalID int) (*models.MovieDetails, error) {
	p.details++
	if p.err != nil {
		return nil, p.err
	}
	return &models.MovieDetails{ExternalID: externalID, Title: "Inception", Year: 2010, ImgURL: "https://img/x.jpg"}, nil
}

func newCached(t *testing.T, next catalog.MetadataProvider) (*CachedProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedProvider(slog.Default(), next, client, time.Hour), mr
}

func TestCachedSearch(t *testing.T) {
	next := &countingProvider{}
	cached, mr := newCached(t, next)
	ctx := context.Background()

	first, err := cached.Search(ctx, "Inception")
	require.NoError(t, err)
	second, err := cached.Search(ctx, " inception ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.searches)
	assert.True(t, mr.Exists("tmdb:search:inception"))

	mr.FastForward(2 * time.Hour)
	_, err = cached.Search(ctx, "Inception")
	require.NoError(t, err)
	assert.Equal(t, 2, next.searches)
}

func TestCachedDetails(t *testing.T) {
	next := &countingProvider{}
	cached, _ := newCached(t, next)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		details, err := cached.GetDetails(ctx, 27205)
		require.NoError(t, err)
		assert.Equal(t, "Inception", details.Title)
	}
	assert.Equal(t, 1, next.details)
}

func TestCachedErrorsNotCached(t *testing.T) {
	next := &countingProvider{err: &catalog.UpstreamError{URL: "x", StatusCode: 503}}
	cached, mr := newCached(t, next)
	ctx := context.Background()

	_, err := cached.GetDetails(ctx, 27205)
	assert.Error(t, err)
	_, err = cached.GetDetails(ctx, 27205)
	assert.Error(t, err)
	assert.Equal(t, 2, next.details)
	assert.False(t, mr.Exists("tmdb:movie:27205"))
}

func TestCacheOutageFallsThrough(t *testing.T) {
	next := &countingProvider{}
	cached, mr := newCached(t, next)
	mr.Close()

	candidates, err := cached.Search(context.Background(), "Inception")
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, 1, next.searches)
}

func TestCacheDropsCorruptEntry(t *testing.T) {
	next := &countingProvider{}
	cached, mr := newCached(t, next)
	require.NoError(t, mr.Set("tmdb:movie:27205", "{not json"))

	details, err := cached.GetDetails(context.Background(), 27205)
	require.NoError(t, err)
	assert.Equal(t, "Inception", details.Title)
	assert.Equal(t, 1, next.details)
}
