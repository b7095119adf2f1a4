package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/rs/cors"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// Version is the API version reported by the OpenAPI document.
const Version = "1.0.0"

// APIRoot prefixes every route.
const APIRoot = "/api/v1"

// Config holds HTTP server settings.
type Config struct {
	Addr string

	// RateLimit is requests per second across all clients. Zero disables it.
	RateLimit float64
	Burst     int

	CORSOrigins []string
}

// ConfigFromSettings converts server settings.
func ConfigFromSettings(s domain.ServerSettings) Config {
	return Config{
		Addr:        s.Addr,
		RateLimit:   s.RateLimit,
		Burst:       s.Burst,
		CORSOrigins: s.CORSOrigins,
	}
}

// Server is the HTTP API server.
type Server struct {
	ports     *Ports
	config    Config
	container *restful.Container
	handler   http.Handler
}

// NewServer creates a server with all routes and filters registered.
func NewServer(ports *Ports, config Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:     ports,
		config:    config,
		container: restful.NewContainer(),
	}

	s.container.Filter(requestID)
	s.container.Filter(accessLog)
	s.container.Filter(recoverPanic)
	s.container.Filter(rateLimit(newLimiter(config.RateLimit, config.Burst)))

	s.registerRoutes()
	s.container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices:                   s.container.RegisteredWebServices(),
		APIPath:                       APIRoot + "/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}))

	origins := config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{HeaderRequestID, "Retry-After"},
	}).Handler(s.container)

	return s, nil
}

// Handler returns the root handler including CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown: %v", err)
		}
	}()

	logger.Info("HTTP API listening on %s", ln.Addr())
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Site Search API",
			Description: "Full-text search over site content",
			Version:     Version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "search", Description: "Search, suggestions and related content"}},
		{TagProps: spec.TagProps{Name: "documents", Description: "Indexed documents"}},
		{TagProps: spec.TagProps{Name: "index", Description: "Index lifecycle"}},
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
	}
}
