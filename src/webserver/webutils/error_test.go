package webutils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/journeo/coverd/src/webserver/webutils"
)

// TestJSONError makes sure that the JSONError function really encodes the response
// as a valid JSON.
func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	errMsg := "some error message for testing"

	webutils.JSONError(rec, errMsg, http.StatusBadGateway)

	res := rec.Result()
	defer func() {
		res.Body.Close()
	}()

	if res.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected Bad Gateway status but got %d", res.StatusCode)
	}

	if !strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		t.Errorf("unexpected content type %s", res.Header.Get("Content-Type"))
	}

	var respJSON struct {
		Error string `json:"error"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&respJSON); err != nil {
		t.Errorf("Failed decoding the JSON response: %s", err)
	}

	if respJSON.Error != errMsg {
		t.Errorf("expected error `%s` but got `%s`", errMsg, respJSON.Error)
	}
}

// TestJSON checks successful JSON responses.
func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	webutils.JSON(rec, map[string]int{"answer": 42})

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status OK but got %d", res.StatusCode)
	}

	var resp map[string]int
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed decoding the JSON response: %s", err)
	}
	if resp["answer"] != 42 {
		t.Errorf("unexpected response %v", resp)
	}
}
