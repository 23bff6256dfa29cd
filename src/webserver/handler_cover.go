package webserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/journeo/coverd/src/cover"
	"github.com/journeo/coverd/src/logging"
	"github.com/journeo/coverd/src/validation"
	"github.com/journeo/coverd/src/webserver/webutils"
)

// CoverHandler answers with the cover URL for a guide. It is the handler
// for the /v1/cover endpoint.
type CoverHandler struct {
	resolver CoverResolver
	logger   zerolog.Logger

	// group collapses identical concurrent requests into one resolution.
	// The guide editor asks again on every key stroke.
	group singleflight.Group
}

// NewCoverHandler returns a new CoverHandler which uses `resolver` for finding
// covers.
func NewCoverHandler(resolver CoverResolver, logger zerolog.Logger) *CoverHandler {
	return &CoverHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// ServeHTTP implements http.Handler.
func (h *CoverHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	params := parseCoverParams(req)
	if err := validation.Struct(params); err != nil {
		webutils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, shared := h.resolve(req.Context(), params)

	l := logging.Ctx(req.Context(), h.logger)
	l.Debug().
		Str("title", params.Title).
		Str("source", string(res.Source)).
		Bool("shared", shared).
		Msg("resolved cover")

	w.Header().Set("Cache-Control", cacheControl(res))
	webutils.JSON(w, res)
}

// resolve runs at most one resolution for the same parameters at a time. The
// resolution is detached from the request so that a client which goes away
// does not spoil the result for the others waiting on it.
func (h *CoverHandler) resolve(ctx context.Context, params coverParams) (cover.Result, bool) {
	key := strings.Join([]string{params.Mode, params.Season, params.Title}, "\x00")

	val, _, shared := h.group.Do(key, func() (any, error) {
		return params.resolve(context.WithoutCancel(ctx), h.resolver), nil
	})

	return val.(cover.Result), shared
}
