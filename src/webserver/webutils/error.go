package webutils

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/journeo/coverd/src/logging"
)

// JSONError writes a JSON object with an error message and sets the HTTP status code.
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	resp := jsonErrorMessage{
		Error: message,
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(&resp); err != nil {
		logging.Warn().Err(err).Msg("error writing JSON error body")
	}
}

// JSON writes `v` encoded as JSON with the 200 OK status.
func JSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logging.Warn().Err(err).Msg("error writing JSON body")
	}
}

type jsonErrorMessage struct {
	Error string `json:"error"`
}
