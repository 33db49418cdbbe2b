// Package tmdb is the metadata provider backed by The Movie Database API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"topmovies/proj/internal/config"
	"topmovies/proj/internal/domain/models"
	"topmovies/proj/internal/services/catalog"
)

const maxBodySize = 2 << 20

type Client struct {
	log          *slog.Logger
	http         *http.Client
	token        string
	baseURL      string
	imageBaseURL string
	imageSize    string
	includeAdult bool
}

/*
New creates a TMDB client.

Every request carries cfg.Token as a bearer credential and is bounded by
cfg.Timeout. The token is inspected (not verified) up front so a mistyped
credential fails at startup instead of on the first search.
*/
func New(log *slog.Logger, cfg config.TMDB) (*Client, error) {
	if err := inspectToken(log, cfg.Token); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("tmdb: timeout must be positive")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("tmdb: invalid base url: %w", err)
	}
	return &Client{
		log:          log,
		http:         &http.Client{Timeout: cfg.Timeout},
		token:        cfg.Token,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		imageSize:    strings.Trim(cfg.ImageSize, "/"),
		includeAdult: cfg.IncludeAdult,
	}, nil
}

type searchResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID            int     `json:"id"`
		Title         string  `json:"title"`
		OriginalTitle string  `json:"original_title"`
		ReleaseDate   string  `json:"release_date"`
		Overview      string  `json:"overview"`
		PosterPath    *string `json:"poster_path"`
	} `json:"results"`
}

type detailsResponse struct {
	ID            int     `json:"id"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
	PosterPath    *string `json:"poster_path"`
}

// Search returns the first page of matches for query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	const op = "tmdb.Client.Search"
	log := c.log.With("op", op, "query", query)
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))
	params.Set("page", "1")

	var resp searchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		log.Error("Error", "errMsg", err.Error())
		return nil, err
	}
	candidates := make([]models.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		year, _ := parseYear(r.ReleaseDate)
		candidate := models.Candidate{
			ExternalID:    r.ID,
			Title:         r.Title,
			OriginalTitle: r.OriginalTitle,
			Year:          year,
			Overview:      r.Overview,
		}
		if r.PosterPath != nil {
			candidate.PosterPath = *r.PosterPath
		}
		candidates = append(candidates, candidate)
	}
	log.Debug("search done", "results", len(candidates))
	return candidates, nil
}

// GetDetails fetches the full record of a movie and maps it to the fields a
// new collection entry needs.
func (c *Client) GetDetails(ctx context.Context, externalID int) (*models.MovieDetails, error) {
	const op = "tmdb.Client.GetDetails"
	log := c.log.With("op", op, "external_id", externalID)
	var resp detailsResponse
	if err := c.get(ctx, "/movie/"+strconv.Itoa(externalID), nil, &resp); err != nil {
		log.Error("Error", "errMsg", err.Error())
		return nil, err
	}
	if strings.TrimSpace(resp.OriginalTitle) == "" {
		return nil, fmt.Errorf("%w: original_title is missing", catalog.ErrMalformedResponse)
	}
	year, err := parseYear(resp.ReleaseDate)
	if err != nil {
		return nil, err
	}
	if resp.PosterPath == nil || *resp.PosterPath == "" {
		return nil, fmt.Errorf("%w: poster_path is missing", catalog.ErrMalformedResponse)
	}
	imgURL := c.imageURL(*resp.PosterPath)
	if utf8.RuneCountInString(imgURL) > models.ImgURLMaxLen {
		return nil, fmt.Errorf("%w: poster url is longer than %d characters", catalog.ErrMalformedResponse, models.ImgURLMaxLen)
	}
	return &models.MovieDetails{
		ExternalID:  externalID,
		Title:       resp.OriginalTitle,
		Year:        year,
		Description: resp.Overview,
		ImgURL:      imgURL,
	}, nil
}

func (c *Client) imageURL(posterPath string) string {
	return c.imageBaseURL + "/" + c.imageSize + "/" + strings.TrimLeft(posterPath, "/")
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return &catalog.UpstreamError{URL: c.baseURL + path, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &catalog.UpstreamError{URL: c.baseURL + path, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrMalformedResponse, err)
	}
	return nil
}

// parseYear reads the year from the leading four characters of a
// YYYY-MM-DD release date.
func parseYear(releaseDate string) (int32, error) {
	if len(releaseDate) < 4 {
		return 0, fmt.Errorf("%w: release_date %q has no year", catalog.ErrMalformedResponse, releaseDate)
	}
	year, err := strconv.ParseInt(releaseDate[:4], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: release_date %q has no year", catalog.ErrMalformedResponse, releaseDate)
	}
	return int32(year), nil
}
