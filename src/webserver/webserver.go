// Package webserver contains the HTTP API through which the guides frontend
// gets cover images. It only reads: covers are resolved on request and
// nothing is ever stored through it.
package webserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/journeo/coverd/src/config"
	"github.com/journeo/coverd/src/webserver/webutils"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// shutdownTimeout is how long in-flight requests are given to finish once the
// server is stopping.
const shutdownTimeout = 15 * time.Second

// Represends our webserver. It will be controlled from here
type Server struct {

	// Configuration of this server
	cfg config.Config

	// Finds covers for guides
	resolver CoverResolver

	// Resizes cover images for /v1/cover/image?size=small
	scaler ImageScaler

	logger zerolog.Logger

	// The actual http.Server doing the HTTP work
	httpSrv *http.Server
}

// NewServer returns a new Server using the supplied configuration cfg. The
// returned server is ready and calling its Serve method will start it.
func NewServer(
	cfg config.Config,
	resolver CoverResolver,
	sclr ImageScaler,
	logger zerolog.Logger,
) *Server {
	return &Server{
		cfg:      cfg,
		resolver: resolver,
		scaler:   sclr,
		logger:   logger,
	}
}

// Handler returns the handler for all of the server's endpoints with all the
// middleware configured for it.
func (srv *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)

	coverHandler := NewCoverHandler(srv.resolver, srv.logger)
	imageHandler := NewCoverImageHandler(
		srv.resolver,
		srv.scaler,
		srv.cfg.UserAgent,
		srv.logger,
	)

	router.Handle("/v1/cover", routeMetrics("cover", coverHandler)).
		Methods(http.MethodGet)
	router.Handle("/v1/cover/image", routeMetrics("cover_image", imageHandler)).
		Methods(http.MethodGet)
	router.Handle("/v1/seasons", routeMetrics("seasons", NewSeasonsHandler())).
		Methods(http.MethodGet)
	router.Handle("/v1/about", routeMetrics("about", NewAboutHandler())).
		Methods(http.MethodGet)

	if srv.cfg.Metrics {
		router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			webutils.JSONError(w, "not found", http.StatusNotFound)
		},
	)

	var handler http.Handler = router

	if srv.cfg.Gzip {
		srv.logger.Debug().Msg("adding gzip handler")

		// Images are already compressed and promhttp does its own gzip.
		handler = NewGzipHandler(handler, []string{"/v1/cover/image", "/metrics"})
	}

	if srv.cfg.JWTSecret != "" {
		srv.logger.Debug().Msg("adding JWT authentication handler")
		handler = NewAuthHandler(handler, srv.cfg.JWTSecret, []string{
			"/v1/about",
			"/metrics",
		})
	}

	handler = cors.Handler(cors.Options{
		AllowedOrigins: srv.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})(handler)

	handler = NewAccessHandler(handler, srv.logger)
	handler = NewRequestIDHandler(handler)

	return handler
}

// Serve listens on the configured address and serves until ctx is done. Then it
// shuts down gracefully. It returns nil on graceful shutdown.
func (srv *Server) Serve(ctx context.Context) error {
	lsn, err := net.Listen("tcp", srv.cfg.Listen)
	if err != nil {
		return err
	}

	return srv.ServeListener(ctx, lsn)
}

// ServeListener is the same as Serve but uses an already opened listener.
// Trying to call it more than once for the same server will result in panic.
func (srv *Server) ServeListener(ctx context.Context, lsn net.Listener) error {
	if srv.httpSrv != nil {
		panic("Second Server.Serve call for the same server")
	}

	srv.httpSrv = &http.Server{
		Handler:        srv.Handler(),
		ReadTimeout:    srv.cfg.ReadTimeout.Std(),
		WriteTimeout:   srv.cfg.WriteTimeout.Std(),
		MaxHeaderBytes: srv.cfg.MaxHeadersSize,
	}

	serveErr := make(chan error, 1)
	go func() {
		srv.logger.Info().Str("address", lsn.Addr().String()).Msg("webserver started")
		serveErr <- srv.httpSrv.Serve(lsn)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	srv.logger.Info().Msg("webserver stopped")
	return nil
}
