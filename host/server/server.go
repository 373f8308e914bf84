package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var maskAny = errors.WithStack

// Config for the HTTP server.
type Config struct {
	// Host interface to listen on
	Host string
	// Port to listen on for HTTP requests
	Port int
}

// Server serves the monitor metrics over HTTP.
type Server struct {
	Config
	log      zerolog.Logger
	gatherer prometheus.Gatherer
}

// New configures a new Server.
func New(cfg Config, log zerolog.Logger, gatherer prometheus.Gatherer) *Server {
	return &Server{
		Config:   cfg,
		log:      log,
		gatherer: gatherer,
	}
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	router := echo.New()
	router.HideBanner = true
	router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	router.GET("/health", echo.WrapHandler(http.HandlerFunc(healthHandler)))
	return router
}

// Run the server until the given context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on address %s", httpAddr)
	}
	return s.serve(ctx, httpLis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	log := s.log
	httpSrv := http.Server{
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	log.Debug().Str("address", lis.Addr().String()).Msg("Serving HTTP")
	go func() {
		if err := httpSrv.Serve(lis); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			return maskAny(err)
		}
	}

	log.Info().Msg("Closing HTTP server")
	if err := httpSrv.Shutdown(context.Background()); err != nil {
		return maskAny(err)
	}
	return nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "OK")
}
