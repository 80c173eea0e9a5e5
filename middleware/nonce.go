package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type contextKey string

const NonceKey contextKey = "csp_nonce"

// GenerateNonce creates a random nonce string
func GenerateNonce() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// CSPSources lists origins allowed on top of 'self'. Entries may be full URLs;
// only their scheme and host are used.
type CSPSources struct {
	// Images, such as a public R2 bucket URL.
	Img []string
	// Endpoints fetched by app.js, such as the public IP lookup services.
	Connect []string
}

// CSPNonce generates a nonce for each request and sends a Content-Security-Policy
// that only allows scripts carrying it.
func CSPNonce(sources CSPSources) echo.MiddlewareFunc {
	imgSrc := append([]string{"'self'", "data:"}, origins(sources.Img)...)
	connectSrc := append([]string{"'self'"}, origins(sources.Connect)...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				log.Error().Err(err).Msg("Failed to generate nonce")
				nonce = "fallback-nonce-value"
			}

			c.Set(string(NonceKey), nonce)

			ctx := context.WithValue(c.Request().Context(), NonceKey, nonce)
			c.SetRequest(c.Request().WithContext(ctx))

			csp := fmt.Sprintf("default-src 'self'; script-src 'self' 'nonce-%s'; style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; img-src %s; font-src 'self' https://fonts.gstatic.com; connect-src %s; form-action 'self'; frame-ancestors 'none'; base-uri 'self'",
				nonce, strings.Join(imgSrc, " "), strings.Join(connectSrc, " "))

			c.Response().Header().Set("Content-Security-Policy", csp)

			return next(c)
		}
	}
}

// origins reduces each URL to scheme://host, dropping blanks and duplicates.
func origins(raw []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range raw {
		u, err := url.Parse(strings.TrimSpace(r))
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		origin := u.Scheme + "://" + u.Host
		if !seen[origin] {
			seen[origin] = true
			out = append(out, origin)
		}
	}
	return out
}

// GetNonce retrieves the nonce from the context
func GetNonce(ctx context.Context) string {
	if val, ok := ctx.Value(NonceKey).(string); ok {
		return val
	}
	return ""
}
