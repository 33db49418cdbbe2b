package logger

import (
	"io"
	"log"
	"log/slog"
	"strings"

	"topmovies/proj/internal/lib/logger/handlers/slogpretty"
)

// SetupLogger writes colored, human readable records in debug mode and JSON
// otherwise.
func SetupLogger(debug bool, out io.Writer) *slog.Logger {
	var handler slog.Handler
	if debug {
		handler = slogpretty.NewPrettyHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler)
}

type errorLogWriter struct {
	log *slog.Logger
}

func (w errorLogWriter) Write(p []byte) (n int, err error) {
	w.log.Warn(strings.TrimSpace(string(p)), "source", "net/http")
	return len(p), nil
}

// LogAdapter lets http.Server.ErrorLog write through slog.
func LogAdapter(logger *slog.Logger) *log.Logger {
	return log.New(errorLogWriter{logger}, "", 0)
}
