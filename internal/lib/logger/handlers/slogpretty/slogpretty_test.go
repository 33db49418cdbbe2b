package slogpretty

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.With("op", "movies.MovieService.Get").Error("Error", "err", errors.New("boom"), "id", 7)
	out := buf.String()
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, `"op": "movies.MovieService.Get"`)
	assert.Contains(t, out, `"err": "boom"`)
	assert.Contains(t, out, `"id": 7`)
}

func TestPrettyHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
