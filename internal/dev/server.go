package dev

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saminightshift/redwood/internal/build"
	"github.com/saminightshift/redwood/internal/config"
)

// Server is the development server.
type Server struct {
	cfg    *config.Config
	paths  *config.Paths
	reload *ReloadServer

	// OnRebuild is called after every rebuild with the error, if any.
	OnRebuild func(err error)
}

// NewServer creates a development server for the given project.
func NewServer(cfg *config.Config, paths *config.Paths) *Server {
	return &Server{
		cfg:    cfg,
		paths:  paths,
		reload: NewReloadServer(),
	}
}

// Run builds the web side, starts watching for changes, and serves until
// the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}

	watcher := NewWatcher(WatcherConfig{Paths: []string{s.paths.Web.Src}})
	watcher.OnChange(func(c Change) {
		if err := s.rebuild(ctx); err != nil {
			s.reload.NotifyError(err.Error())
			if s.OnRebuild != nil {
				s.OnRebuild(err)
			}
			return
		}
		s.reload.ClearError()
		// Stylesheet edits swap in place; everything else reloads the page.
		if filepath.Ext(c.Path) == ".css" {
			s.reload.NotifyCSS(filepath.Base(c.Path))
		} else {
			s.reload.NotifyReload()
		}
		if s.OnRebuild != nil {
			s.OnRebuild(nil)
		}
	})
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()
	defer s.reload.Close()

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/ws", s.reload.HandleWebSocket)
	router.Handle("/metrics", promhttp.Handler())
	router.NotFound(s.serveStatic)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// rebuild runs a web-side build and records metrics.
func (s *Server) rebuild(ctx context.Context) error {
	start := time.Now()

	builder := build.New(s.paths, build.Options{Clean: true})
	_, err := builder.Build(ctx)

	buildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		buildsTotal.WithLabelValues("error").Inc()
		return err
	}
	buildsTotal.WithLabelValues("ok").Inc()
	return nil
}

// serveStatic serves files from web/dist with an index.html fallback so
// client-side routes resolve on refresh. HTML responses get the live-reload
// client injected.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	name := filepath.Clean(r.URL.Path)
	path := filepath.Join(s.paths.Web.Dist, name)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		if filepath.Ext(path) == ".html" {
			s.serveHTML(w, path)
			return
		}
		http.ServeFile(w, r, path)
		return
	}

	index := filepath.Join(s.paths.Web.Dist, "index.html")
	if _, err := os.Stat(index); err == nil {
		s.serveHTML(w, index)
		return
	}

	http.NotFound(w, r)
}

// serveHTML serves an HTML file with the reload client injected.
func (s *Server) serveHTML(w http.ResponseWriter, path string) {
	html, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(InjectReloadScript(html))
}
