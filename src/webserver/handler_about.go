package webserver

import (
	"net/http"

	"github.com/journeo/coverd/src/version"
	"github.com/journeo/coverd/src/webserver/webutils"
)

type aboutHandler struct {
	resp aboutResponse
}

// NewAboutHandler returns the HTTP handler which shows a JSON with information
// about the server.
func NewAboutHandler() http.Handler {
	return &aboutHandler{
		resp: aboutResponse{
			ServerVersion: version.Version,
		},
	}
}

func (h *aboutHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	webutils.JSON(writer, h.resp)
}

type aboutResponse struct {
	ServerVersion string `json:"server_version"`
}
