package web

import (
	"bytes"
	"net/http"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/logging"
	"github.com/JonMunkholm/universidad/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"
)

// renderPage writes body inside the console layout. The page is rendered
// to a buffer first so a template failure can still produce a 500.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, title, activePath string, body templ.Component) {
	infos := core.All()
	nav := make([]templates.NavItem, 0, len(infos))
	for _, e := range infos {
		nav = append(nav, templates.NavItem{Label: e.Label, Path: e.Path, Active: e.Path == activePath})
	}

	var buf bytes.Buffer
	if err := templates.Layout(title, nav, s.bus.List(), body).Render(r.Context(), &buf); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "title", title, "error", err)
		http.Error(w, "error interno al renderizar la página", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Debug("write page", "error", err)
	}
}

// handleHome renders the dashboard, counting every entity concurrently. A
// failed count is shown on its card only.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	infos := core.All()
	cards := make([]templates.EntityCard, len(infos))

	var g errgroup.Group
	for i, info := range infos {
		i, info := i, info
		cards[i] = templates.EntityCard{Label: info.Label, Path: info.Path, Description: info.Description}
		if info.Stats == nil {
			continue
		}
		g.Go(func() error {
			stats, err := info.Stats(r.Context(), s.api)
			if err != nil {
				logging.WithFields(r.Context(), "entity", info.Key).Warn("dashboard count failed", "error", err)
				cards[i].Err = core.DisplayMessage(err)
				return nil
			}
			cards[i].Total, cards[i].Active = stats.Total, stats.Active
			return nil
		})
	}
	_ = g.Wait()

	s.renderPage(w, r, http.StatusOK, "Inicio", "/", templates.Home(cards))
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status        string `json:"status"`
	API           string `json:"api"`
	Entities      int    `json:"entities"`
	Sessions      int    `json:"sessions"`
	Notifications int    `json:"notifications"`
	Streams       int    `json:"streams"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{
		Status:        "ok",
		API:           s.api.BaseURL(),
		Entities:      core.Count(),
		Sessions:      s.sessions.Len(),
		Notifications: len(s.bus.List()),
		Streams:       s.bus.Subscribers(),
	})
}
