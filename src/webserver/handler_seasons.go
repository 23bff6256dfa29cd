package webserver

import (
	"net/http"

	"github.com/journeo/coverd/src/cover"
	"github.com/journeo/coverd/src/webserver/webutils"
)

type seasonsHandler struct {
	resp []seasonResponse
}

// NewSeasonsHandler returns the handler which lists all season tags together
// with their display labels and fallback covers.
func NewSeasonsHandler() http.Handler {
	seasons := cover.Seasons()
	resp := make([]seasonResponse, 0, len(seasons))
	for _, season := range seasons {
		resp = append(resp, seasonResponse{
			Season: season,
			Label:  season.Label(),
			URL:    cover.SeasonURL(season),
		})
	}

	return &seasonsHandler{resp: resp}
}

func (h *seasonsHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	webutils.JSON(w, h.resp)
}

type seasonResponse struct {
	Season cover.Season `json:"season"`
	Label  string       `json:"label"`
	URL    string       `json:"url"`
}
