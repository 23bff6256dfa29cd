package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gbrlsnchs/jwt/v3"

	"github.com/journeo/coverd/src/webserver/webutils"
)

// AuthHandler is a handler wrapper used for authenticaation. Its only job is
// to do the authentication and then pass the work to the Handler it wraps around.
//
// Clients authenticate with the JWT they got from the guides backend, sent as
// an Authorization Bearer token. Tokens are HS256 signed with a secret shared
// with the backend and must not be expired.
type AuthHandler struct {
	wrapped    http.Handler // The actual handler that does the APP Logic job
	alg        *jwt.HMACSHA // Verifies token signatures
	exceptions []string     // Paths which will be exempt from authentication

	// now is replaced in tests.
	now func() time.Time
}

// NewAuthHandler returns an AuthHandler which requires tokens signed with
// `secret` for everything but the paths listed in `exceptions`.
func NewAuthHandler(wrapped http.Handler, secret string, exceptions []string) *AuthHandler {
	return &AuthHandler{
		wrapped:    wrapped,
		alg:        jwt.NewHS256([]byte(secret)),
		exceptions: exceptions,
		now:        time.Now,
	}
}

// ServeHTTP implements the http.Handler interface and does the actual
// authentication check for every request
func (hl *AuthHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	if !hl.authenticated(req) {
		writer.Header().Set("WWW-Authenticate", `Bearer realm="coverd"`)
		webutils.JSONError(writer, "authentication required", http.StatusUnauthorized)
		return
	}

	hl.wrapped.ServeHTTP(writer, req)
}

func (hl *AuthHandler) authenticated(r *http.Request) bool {
	for _, path := range hl.exceptions {
		if r.URL.Path == path {
			return true
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return hl.withJWT(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
	}

	return false
}

func (hl *AuthHandler) withJWT(token string) bool {
	if token == "" {
		return false
	}

	var pl jwt.Payload
	expValidator := jwt.ExpirationTimeValidator(hl.now())
	validatePayload := jwt.ValidatePayload(&pl, expValidator)

	_, err := jwt.Verify([]byte(token), hl.alg, &pl, validatePayload)
	return err == nil
}
