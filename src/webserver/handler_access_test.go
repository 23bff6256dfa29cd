package webserver_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/journeo/coverd/src/logging"
	"github.com/journeo/coverd/src/webserver"
)

// TestAccessHandler makes sure that the access handler logs the request and
// that credentials from the Authorization header stay out of the log.
func TestAccessHandler(t *testing.T) {
	recorder := &recordingHandler{code: http.StatusTeapot}

	buffer := &bytes.Buffer{}
	accessHandler := webserver.NewRequestIDHandler(
		webserver.NewAccessHandler(recorder, zerolog.New(buffer)),
	)

	const token = "hidden-token"

	req := httptest.NewRequest(http.MethodGet, "/v1/cover?title=Bruges&unrelated=5", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("User-Agent", "http-unit-test")
	req.Header.Set("X-Request-Id", "req-from-client")

	resp := httptest.NewRecorder()

	accessHandler.ServeHTTP(resp, req)

	if recorder.called != 1 {
		t.Errorf(
			"expected wrapped handler to be called once but it was called %d times",
			recorder.called,
		)
	}

	logged := buffer.String()
	t.Logf("ACCESS LOG BUFFER: %s\n", logged)

	var entry struct {
		Method    string `json:"method"`
		URL       string `json:"url"`
		Status    int    `json:"status"`
		UserAgent string `json:"user_agent"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(buffer.Bytes(), &entry); err != nil {
		t.Fatalf("access log is not JSON: %s", err)
	}

	if !strings.Contains(entry.URL, "/v1/cover") || !strings.Contains(entry.URL, "unrelated=5") {
		t.Errorf("access log was missing parts of the request URL")
	}

	if strings.Contains(logged, token) {
		t.Errorf("access log contains the bearer token")
	}

	if entry.Status != http.StatusTeapot {
		t.Errorf("expected logged status %d but got %d", http.StatusTeapot, entry.Status)
	}

	if entry.UserAgent != "http-unit-test" {
		t.Errorf("user agent was not logged")
	}

	if entry.RequestID != "req-from-client" {
		t.Errorf("expected request ID from the client but got `%s`", entry.RequestID)
	}

	if recorder.requestID != "req-from-client" {
		t.Errorf("request ID did not reach the handler, got `%s`", recorder.requestID)
	}
}

// TestRequestIDGenerated checks that requests without an ID get a new one.
func TestRequestIDGenerated(t *testing.T) {
	recorder := &recordingHandler{}
	handler := webserver.NewRequestIDHandler(recorder)

	ids := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons", nil)
		if i == 2 {
			req.Header.Set("X-Request-Id", strings.Repeat("x", 200))
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)

		id := resp.Header().Get("X-Request-Id")
		if id == "" || len(id) > 64 {
			t.Fatalf("unexpected request ID `%s`", id)
		}
		if id != recorder.requestID {
			t.Errorf("response ID %s differs from the context one %s", id, recorder.requestID)
		}
		ids[id] = struct{}{}
	}

	if len(ids) != 3 {
		t.Errorf("request IDs were not unique: %v", ids)
	}
}

type recordingHandler struct {
	called    int
	code      int
	requestID string
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.called++
	h.requestID = logging.RequestIDFromContext(req.Context())
	if h.code != 0 {
		w.WriteHeader(h.code)
	}
}
