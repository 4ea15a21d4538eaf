// Package status serves the keep-alive and health endpoints next to
// the bot's long-polling loop.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"grana/internal/log"
	"grana/internal/middleware/trace"
	"grana/web"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wraps http.Server with the status routes configured.
type Server struct {
	http.Server

	version   string
	startedAt time.Time
	pinger    Pinger
	logger    *log.Logger
	templates *template.Template
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr, version string, pinger Pinger, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		version:   version,
		startedAt: time.Now(),
		pinger:    pinger,
		logger:    logger.WithComponent(log.ComponentStatus),
	}

	t, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("parsing templates", log.FieldError, err)
	}
	s.templates = t

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/health", s.handleHealth)
	s.Handler = trace.Middleware(s.logger, mux)

	return s
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		fmt.Fprintln(w, "Grana Bot está rodando.")
		return
	}
	data := map[string]string{
		"Status":    "rodando",
		"Version":   s.version,
		"StartedAt": s.startedAt.Format("02/01/2006 15:04"),
	}
	if err := s.templates.ExecuteTemplate(w, "status.html", data); err != nil {
		s.logger.Error("render status page", log.FieldError, err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "online",
		"bot":       "Grana Bot",
		"version":   s.version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleHealth is the readiness probe: it verifies the database is
// reachable before reporting healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := map[string]any{
		"status":    "healthy",
		"uptime":    time.Since(s.startedAt).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	code := http.StatusOK

	if s.pinger != nil {
		if err := s.pinger.Ping(ctx); err != nil {
			s.logger.Warn("health check ping failed", log.FieldError, err)
			health["status"] = "unhealthy"
			health["database"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			health["database"] = "ok"
		}
	}

	w.WriteHeader(code)
	json.NewEncoder(w).Encode(health)
}
