package tmdb

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

const readScope = "api_read"

// inspectToken checks that token looks like a TMDB v4 read access token. The
// signature belongs to TMDB and can't be verified here, so only the shape and
// claims are checked.
func inspectToken(log *slog.Logger, token string) error {
	if token == "" {
		return errors.New("tmdb: token is required")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("tmdb: token is not a read access token: %w", err)
	}
	scopes, _ := claims["scopes"].([]any)
	if !slices.Contains(scopes, any(readScope)) {
		log.Warn("tmdb token has no api_read scope, requests may be rejected", "sub", claims["sub"])
	}
	return nil
}
