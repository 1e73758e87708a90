// Package server exposes recorded usage and prompt scores over HTTP: JSON
// endpoints for tooling and a single HTML report page.
package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mizutanik/promptpulse/internal/usage"
)

//go:embed static
var staticFS embed.FS

// Server represents the HTTP report server.
type Server struct {
	echo  *echo.Echo
	port  int
	store *usage.Store
}

// New creates a Server over an opened usage store.
func New(port int, store *usage.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:  e,
		port:  port,
		store: store,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	api.GET("/usage", s.handleUsage)
	api.GET("/scores", s.handleScores)

	s.echo.GET("/health", s.handleHealth)

	staticContent, err := fs.Sub(staticFS, "static")
	if err == nil {
		s.echo.GET("/*", echo.WrapHandler(http.FileServer(http.FS(staticContent))))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("Serving report on http://127.0.0.1%s\n", addr)
	return s.echo.Start(addr)
}

// Stop gracefully stops the server.
func (s *Server) Stop() error {
	return s.echo.Close()
}
