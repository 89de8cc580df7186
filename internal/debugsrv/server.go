// Package debugsrv is a small local HTTP inspector for a running client: the
// current view, the stored session and the Notion export.
package debugsrv

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"zift.local/internal/app"
	"zift.local/internal/auth"
	"zift.local/internal/domain"
	"zift.local/internal/nav"
	"zift.local/internal/notion"
)

type AppState interface {
	Mode() app.Mode
	Auth() *auth.Controller
	Main() *nav.Controller
	User() *domain.User
}

type SessionSource interface {
	Get(ctx context.Context) *domain.Session
}

type Server struct {
	app      AppState
	session  SessionSource
	notion   *notion.Client
	exporter *notion.Exporter
	mux      *http.ServeMux
}

// New wires the routes. n may be nil when Notion is not configured; the
// Notion routes then answer 503. exporter must be set whenever n is.
func New(a AppState, sess SessionSource, n *notion.Client, exporter *notion.Exporter) *Server {
	s := &Server{
		app:      a,
		session:  sess,
		notion:   n,
		exporter: exporter,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /debug/view", s.handleDebugView)
	s.mux.HandleFunc("GET /debug/session", s.handleDebugSession)
	s.mux.HandleFunc("GET /debug/notion", s.handleDebugNotion)
	s.mux.HandleFunc("GET /debug/notion/search", s.handleDebugSearchDatabases)
	s.mux.HandleFunc("POST /debug/notion/export", s.handleNotionExport)
}

func (s *Server) Handler() http.Handler { return s.mux }

// Listen serves until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Println("[debug] inspector listening on", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
