package debugsrv

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"zift.local/internal/app"
	"zift.local/internal/config"
	"zift.local/internal/nav"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[debug] encode response error: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "mode": s.app.Mode()})
}

type authView struct {
	State        string `json:"state"`
	PendingEmail string `json:"pendingEmail,omitempty"`
	ResendInSecs int    `json:"resendInSeconds,omitempty"`
}

type viewResponse struct {
	Mode string        `json:"mode"`
	Auth *authView     `json:"auth,omitempty"`
	Nav  *nav.Snapshot `json:"nav,omitempty"`
	User string        `json:"user,omitempty"`
}

func (s *Server) handleDebugView(w http.ResponseWriter, r *http.Request) {
	out := viewResponse{Mode: string(s.app.Mode())}
	if a := s.app.Auth(); a != nil {
		out.Auth = &authView{
			State:        a.State().String(),
			PendingEmail: a.PendingEmail(),
			ResendInSecs: int(a.ResendIn().Seconds()),
		}
	}
	if m := s.app.Main(); m != nil {
		snap := m.Snapshot()
		out.Nav = &snap
	}
	if u := s.app.User(); u != nil {
		out.User = u.Email
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDebugSession never returns the raw token.
func (s *Server) handleDebugSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session.Get(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]any{"present": false})
		return
	}
	out := map[string]any{
		"present": true,
		"token":   config.Mask(sess.AccessToken),
	}
	if sess.User != nil {
		out["user"] = map[string]any{
			"id":               sess.User.ID,
			"name":             sess.User.Name,
			"email":            sess.User.Email,
			"isResumeUploaded": sess.User.IsResumeUploaded,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) notionConfigured(w http.ResponseWriter) bool {
	if s.notion == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":    false,
			"error": "notion export is not configured (NOTION_TOKEN, NOTION_DB_ID)",
		})
		return false
	}
	return true
}

func (s *Server) handleDebugNotion(w http.ResponseWriter, r *http.Request) {
	if !s.notionConfigured(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := s.notion.Ping(ctx); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "database": s.notion.DatabaseID()})
}

func (s *Server) handleDebugSearchDatabases(w http.ResponseWriter, r *http.Request) {
	if !s.notionConfigured(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	dbs, err := s.notion.SearchDatabases(ctx)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}

	type liteDB struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	out := struct {
		Count int      `json:"count"`
		DBs   []liteDB `json:"dbs"`
	}{DBs: []liteDB{}}

	for _, db := range dbs {
		title := ""
		if len(db.Title) > 0 {
			title = db.Title[0].PlainText
		}
		out.DBs = append(out.DBs, liteDB{ID: db.ID, Title: title})
	}
	out.Count = len(out.DBs)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNotionExport(w http.ResponseWriter, r *http.Request) {
	if !s.notionConfigured(w) {
		return
	}
	if s.app.Mode() != app.ModeMain {
		writeJSON(w, http.StatusConflict, map[string]any{"ok": false, "error": "sign in before exporting"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	res, err := s.exporter.Export(ctx)
	if err != nil {
		log.Printf("[/debug/notion/export] error: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{"ok": false, "error": err.Error(), "result": res})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "result": res})
}
