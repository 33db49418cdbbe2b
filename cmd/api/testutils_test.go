package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"topmovies/proj/internal/clients/tmdb"
	"topmovies/proj/internal/config"
	"topmovies/proj/internal/services"
	"topmovies/proj/internal/storage/sqlite"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeTMDB answers like the real API for a handful of ids:
// 27205 is a complete movie, 404 lacks a poster and 500 fails upstream.
func fakeTMDB() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/3/search/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "zzzz-no-such-movie" {
			io.WriteString(w, `{"page":1,"results":[],"total_pages":0,"total_results":0}`)
			return
		}
		io.WriteString(w, `{"page":1,"results":[
			{"id":27205,"title":"Inception","original_title":"Inception","release_date":"2010-07-15","poster_path":"/inception.jpg"},
			{"id":64956,"title":"Inception: The Cobol Job","release_date":"2010-12-07","poster_path":null}
		]}`)
	})
	mux.HandleFunc("/3/movie/27205", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":27205,"original_title":"Inception","release_date":"2010-07-15",
			"overview":"Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets is offered a chance to regain his old life.",
			"poster_path":"/inception.jpg"}`)
	})
	mux.HandleFunc("/3/movie/404", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":404,"original_title":"Posterless","release_date":"1999-01-01","poster_path":null}`)
	})
	mux.HandleFunc("/3/movie/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return mux
}

func testConfig() *config.Config {
	return &config.Config{
		Limiter: config.Limiter{Enabled: false, Rps: 20, Burst: 5},
		Server:  config.Server{ShutdownTimeout: time.Second},
		DB:      config.DB{Driver: config.DriverSQLite},
	}
}

func NewTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	upstream := httptest.NewServer(fakeTMDB())
	t.Cleanup(upstream.Close)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scopes": []string{"api_read"},
	}).SignedString([]byte("test"))
	require.NoError(t, err)
	cfg.TMDB = config.TMDB{
		Token:        token,
		BaseURL:      upstream.URL + "/3",
		ImageBaseURL: "https://image.tmdb.org/t/p/",
		ImageSize:    "w500",
		IncludeAdult: true,
		Timeout:      2 * time.Second,
	}
	provider, err := tmdb.New(log, cfg.TMDB)
	require.NoError(t, err)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "movies.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	app := NewApplication(cfg, log, services.New(log, store, provider))
	t.Cleanup(app.shutdown)
	return app
}

func do(t *testing.T, handler http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

type testResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

// decodeData reads the response envelope and unmarshals data[key] into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, key string, dst any) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	if key != "" {
		raw, ok := resp.Data[key]
		require.True(t, ok, "response has no %q: %s", key, rec.Body.String())
		require.NoError(t, json.Unmarshal(raw, dst))
	}
	return resp
}
