package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"github.com/takutakahashi/demoenv-bot/internal/di"
	"github.com/takutakahashi/demoenv-bot/pkg/config"
)

// Server wraps the echo instance, the wired container, and the optional
// digest scheduler.
type Server struct {
	config    *config.Config
	echo      *echo.Echo
	container *di.Container
	cron      *cron.Cron
}

// NewServer creates the HTTP server with its middleware and routes. The
// Recover middleware is the outermost boundary: any unanticipated panic in
// a handler becomes a generic 500 instead of taking the process down.
func NewServer(cfg *config.Config, container *di.Container) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		config:    cfg,
		echo:      e,
		container: container,
	}
	s.registerRoutes()
	s.setupDigest()
	return s
}

// Echo exposes the underlying echo instance (tests register requests
// against it directly).
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start begins serving on the given address and starts the digest
// scheduler when one is configured.
func (s *Server) Start(address string) error {
	if s.cron != nil {
		s.cron.Start()
	}
	if err := s.echo.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the digest scheduler and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return s.echo.Shutdown(ctx)
}

// setupDigest schedules the periodic active-lease summary post when a cron
// spec is configured. The digest only reads and notifies; it never touches
// lease state.
func (s *Server) setupDigest() {
	spec := s.config.DigestSchedule
	if spec == "" {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, s.postDigest); err != nil {
		log.Printf("Warning: invalid digest schedule %q, digest disabled: %v", spec, err)
		return
	}
	log.Printf("Scheduled active-environment digest: %s", spec)
	s.cron = c
}

func (s *Server) postDigest() {
	ctx := context.Background()
	active, err := s.container.ListActiveUC.Execute(ctx)
	if err != nil {
		log.Printf("Warning: digest skipped, failed to list active environments: %v", err)
		return
	}
	text := s.container.LeasePresenter.FullList(active, time.Now())
	if err := s.container.Notifier.Post(ctx, text); err != nil {
		log.Printf("Warning: failed to post digest: %v", err)
	}
}
