package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/middleware"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// RouteRegistrar mounts a group of API routes.
type RouteRegistrar interface {
	RegisterRoutes(g *echo.Group)
}

// HealthRegistrar mounts probe routes at the root of the server.
type HealthRegistrar interface {
	RegisterRoutes(e *echo.Echo)
}

type Options struct {
	ServiceName       string
	Port              int
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	MetricsEnabled    bool
}

// Server is the HTTP front of the showroom API. It satisfies
// startup.StartupDependency.
type Server struct {
	echo     *echo.Echo
	http     *http.Server
	listener net.Listener
	logger   ectologger.Logger
	options  Options
	done     chan struct{}
	serveErr error
}

func New(options Options, logger ectologger.Logger, health HealthRegistrar, routes ...RouteRegistrar) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(echomw.Recover())
	e.Use(otelecho.Middleware(options.ServiceName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))

	if health != nil {
		health.RegisterRoutes(e)
	}
	if options.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	api := e.Group("/api")
	for _, r := range routes {
		r.RegisterRoutes(api)
	}

	return &Server{
		echo:    e,
		logger:  logger,
		options: options,
		http: &http.Server{
			Handler:           e,
			ReadTimeout:       options.ReadTimeout,
			ReadHeaderTimeout: options.ReadHeaderTimeout,
			WriteTimeout:      options.WriteTimeout,
			IdleTimeout:       options.IdleTimeout,
			MaxHeaderBytes:    options.MaxHeaderBytes,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr is the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Done is closed when the serve loop exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Err is the serve loop's terminal error once Done is closed. A clean Stop
// leaves it nil.
func (s *Server) Err() error {
	return s.serveErr
}

func (s *Server) GetName() string {
	return "http-server"
}

func (s *Server) DependsOn() []string {
	return []string{"database"}
}

// Start binds the port synchronously so address errors fail startup, then
// serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.options.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.options.Port, err)
	}
	s.listener = ln
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			s.serveErr = err
		}
	}()

	s.logger.WithContext(ctx).Infof("HTTP server listening on %s", ln.Addr().String())
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	if s.options.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.ShutdownTimeout)
		defer cancel()
	}

	s.logger.WithContext(ctx).Info("Shutting down HTTP server")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	<-s.done
	return s.serveErr
}
