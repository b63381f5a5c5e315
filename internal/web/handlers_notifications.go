package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/universidad/internal/logging"
	"github.com/JonMunkholm/universidad/internal/notify"
	"github.com/JonMunkholm/universidad/internal/web/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// streamKeepAlive is how often an idle notification stream sends a comment
// so proxies keep the connection open.
const streamKeepAlive = 25 * time.Second

// handleNotifications renders the live notification list fragment.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		s.handleAPINotifications(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.NotificationList(s.bus.List()).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render notifications", "error", err)
	}
}

func (s *Server) handleAPINotifications(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.bus.List())
}

// handleNotificationDismiss removes one notification. Form posts are sent
// back to the page they came from.
func (s *Server) handleNotificationDismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed := s.bus.Remove(id)

	if wantsJSON(r) {
		if !removed {
			writeError(w, r, http.StatusNotFound, "notificación no encontrada")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	seeOther(w, r, target)
}

// handleNotificationStream pushes the notification list over Server-Sent
// Events each time it changes. The bus subscription ends with the request.
func (s *Server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	logger := logging.FromContext(r.Context())

	updates := make(chan []notify.Notification, 1)
	sub := s.bus.Subscribe(func(items []notify.Notification) {
		// Keep only the latest snapshot; deliveries to one subscriber are serialized.
		select {
		case updates <- items:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- items
		}
	})
	defer sub.Unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		logger.Warn("notification stream not supported", "error", err)
		return
	}

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	var eventID int
	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return

		case items := <-updates:
			data, err := json.Marshal(items)
			if err != nil {
				logger.Error("encode notifications", "error", err)
				return
			}
			eventID++
			if _, err := fmt.Fprintf(w, "id: %d\nevent: notifications\ndata: %s\n\n", eventID, data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
