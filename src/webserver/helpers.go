package webserver

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/journeo/coverd/src/cover"
	"github.com/journeo/coverd/src/metrics"
)

//counterfeiter:generate . CoverResolver

// CoverResolver finds cover images for guides. *cover.Resolver implements it.
type CoverResolver interface {
	ResolveResult(ctx context.Context, title string, season cover.Season) cover.Result
}

//counterfeiter:generate . ImageScaler

// ImageScaler resizes images. *scaler.Scaler implements it.
type ImageScaler interface {
	Scale(ctx context.Context, img io.Reader, toWidth int) ([]byte, error)
}

// defaultTitle is used for guides which have no title yet. The guide editor
// shows a preview cover while the title is still empty.
const defaultTitle = "voyage"

// coverParams are the query parameters common for all cover endpoints.
type coverParams struct {
	Title  string `json:"title" validate:"max=200"`
	Season string `json:"season" validate:"omitempty,oneof=ETE PRINTEMPS AUTOMNE HIVER"`
	Mode   string `json:"mode" validate:"omitempty,oneof=static full"`
}

func parseCoverParams(req *http.Request) coverParams {
	query := req.URL.Query()
	return coverParams{
		Title:  query.Get("title"),
		Season: query.Get("season"),
		Mode:   query.Get("mode"),
	}
}

// resolve finds the cover the way the parameters ask for it.
func (p coverParams) resolve(ctx context.Context, resolver CoverResolver) cover.Result {
	title := p.Title
	if title == "" {
		title = defaultTitle
	}

	if p.Mode == modeStatic {
		res := cover.ResolveStaticResult(title, cover.Season(p.Season))
		metrics.Resolutions.WithLabelValues(string(res.Source)).Inc()
		return res
	}

	return resolver.ResolveResult(ctx, title, cover.Season(p.Season))
}

const (
	modeStatic = "static"
	modeFull   = "full"
)

// cacheControl returns how long clients may keep a resolved cover. Season
// photos may be the result of a temporary lookup failure.
func cacheControl(res cover.Result) string {
	if res.Source == cover.SourceSeason && res.Destination != "" {
		return "public, max-age=300"
	}
	return "public, max-age=86400"
}

// routeMetrics counts the responses of a single route.
func routeMetrics(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := newLoggedResponseWriter(w)
		h.ServeHTTP(ww, req)
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.code)).Inc()
	})
}
