package webserver_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gbrlsnchs/jwt/v3"

	"github.com/journeo/coverd/src/webserver"
)

const testSecret = "auth_secret_which_is_completely_unknown_to_anyone_promise"

func signToken(t *testing.T, alg jwt.Algorithm, expires time.Time) string {
	t.Helper()

	pl := jwt.Payload{
		Subject:        "voyageur@example.com",
		IssuedAt:       jwt.NumericDate(time.Now()),
		ExpirationTime: jwt.NumericDate(expires),
	}
	token, err := jwt.Sign(pl, alg)
	if err != nil {
		t.Fatalf("signing token: %s", err)
	}
	return string(token)
}

// TestAuthHandler makes sure that only requests with valid bearer tokens reach
// the wrapped handler.
func TestAuthHandler(t *testing.T) {
	tests := []struct {
		desc         string
		path         string
		authHeader   func(t *testing.T) string
		expectedCode int
	}{
		{
			desc: "bearer JWT token",
			path: "/v1/cover",
			authHeader: func(t *testing.T) string {
				token := signToken(t, jwt.NewHS256([]byte(testSecret)), time.Now().Add(time.Hour))
				return fmt.Sprintf("Bearer %s", token)
			},
			expectedCode: http.StatusOK,
		},
		{
			desc:         "path with exception",
			path:         "/v1/about",
			authHeader:   func(*testing.T) string { return "" },
			expectedCode: http.StatusOK,
		},
		{
			desc:         "path which only starts like an exception",
			path:         "/v1/about-internal",
			authHeader:   func(*testing.T) string { return "" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc:         "path under an exception",
			path:         "/v1/about/cover",
			authHeader:   func(*testing.T) string { return "" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc:         "no authentication whatsoever",
			path:         "/v1/cover",
			authHeader:   func(*testing.T) string { return "" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc:         "malformed token",
			path:         "/v1/cover",
			authHeader:   func(*testing.T) string { return "Bearer baba" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc:         "empty token",
			path:         "/v1/cover",
			authHeader:   func(*testing.T) string { return "Bearer " },
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "token created with different secret",
			path: "/v1/cover",
			authHeader: func(t *testing.T) string {
				alg := jwt.NewHS256([]byte("not the correct secret"))
				return "Bearer " + signToken(t, alg, time.Now().Add(time.Hour))
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "expired token",
			path: "/v1/cover",
			authHeader: func(t *testing.T) string {
				alg := jwt.NewHS256([]byte(testSecret))
				return "Bearer " + signToken(t, alg, time.Now().Add(-10*time.Minute))
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "different encoding algo used",
			path: "/v1/cover",
			authHeader: func(t *testing.T) string {
				alg := jwt.NewHS384([]byte(testSecret))
				return "Bearer " + signToken(t, alg, time.Now().Add(time.Hour))
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "basic auth is not supported",
			path: "/v1/cover",
			authHeader: func(*testing.T) string {
				return "Basic dm95YWdldXI6cGFzc3dvcmQ="
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			recorder := &recordingHandler{}
			authHandler := webserver.NewAuthHandler(
				recorder,
				testSecret,
				[]string{"/v1/about"},
			)

			req := httptest.NewRequest(http.MethodGet, test.path, nil)
			if header := test.authHeader(t); header != "" {
				req.Header.Set("Authorization", header)
			}
			resp := httptest.NewRecorder()

			authHandler.ServeHTTP(resp, req)

			if resp.Code != test.expectedCode {
				t.Errorf("expected code %d but got %d", test.expectedCode, resp.Code)
			}

			if test.expectedCode == http.StatusOK && recorder.called != 1 {
				t.Errorf("wrapped handler was not called")
			}

			if test.expectedCode == http.StatusUnauthorized {
				if recorder.called != 0 {
					t.Errorf("wrapped handler was called for unauthenticated request")
				}
				if !strings.Contains(resp.Body.String(), "authentication required") {
					t.Errorf("unexpected body: %s", resp.Body.String())
				}
				if resp.Header().Get("WWW-Authenticate") == "" {
					t.Errorf("no authentication challenge was sent")
				}
			}
		})
	}
}
