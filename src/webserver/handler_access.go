package webserver

import (
	"net/http"
	"time"

	"github.com/pborman/uuid"
	"github.com/rs/zerolog"

	"github.com/journeo/coverd/src/logging"
)

// requestIDHeader carries the request ID to and from clients.
const requestIDHeader = "X-Request-Id"

// maxRequestIDLen caps request IDs coming from clients.
const maxRequestIDLen = 64

// RequestIDHandler makes sure every request has an ID. It is taken from the
// X-Request-Id header when the client sent one. The ID is returned in the
// response headers and is available to handlers through the request context.
type RequestIDHandler struct {
	wrapped http.Handler
}

// NewRequestIDHandler returns a RequestIDHandler which wraps around `h`.
func NewRequestIDHandler(h http.Handler) *RequestIDHandler {
	return &RequestIDHandler{wrapped: h}
}

// ServeHTTP implements the http.Handler interface.
func (h *RequestIDHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id := req.Header.Get(requestIDHeader)
	if id == "" || len(id) > maxRequestIDLen {
		id = uuid.New()
	}

	w.Header().Set(requestIDHeader, id)
	ctx := logging.ContextWithRequestID(req.Context(), id)
	h.wrapped.ServeHTTP(w, req.WithContext(ctx))
}

// AccessHandler is an http.Handler which wraps around another handler and prints
// access logs.
type AccessHandler struct {
	wrapped http.Handler
	logger  zerolog.Logger
}

// NewAccessHandler returns an AccessHandler which will call `h` and the log
// information about the http request and response.
func NewAccessHandler(h http.Handler, logger zerolog.Logger) *AccessHandler {
	return &AccessHandler{
		wrapped: h,
		logger:  logger,
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *AccessHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	started := time.Now()
	ww := newLoggedResponseWriter(w)
	h.wrapped.ServeHTTP(ww, req)
	elapsed := time.Since(started)

	l := logging.Ctx(req.Context(), h.logger)
	l.Info().
		Str("method", req.Method).
		Str("url", req.URL.RequestURI()).
		Int("status", ww.code).
		Dur("duration", elapsed).
		Str("user_agent", req.Header.Get("User-Agent")).
		Str("remote_addr", req.RemoteAddr).
		Msg("access")
}

type loggedResponseWriter struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func newLoggedResponseWriter(w http.ResponseWriter) *loggedResponseWriter {
	return &loggedResponseWriter{
		ResponseWriter: w,
		code:           http.StatusOK,
	}
}

func (w *loggedResponseWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.code = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

// Flush implements http.Flusher when the wrapped writer does.
func (w *loggedResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the wrapped writer.
func (w *loggedResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
