package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details and the request ID (server-side)
//   - Returned to clients as user-facing messages with a support code
//   - Rendered as JSON for API clients and as an HTML page otherwise
//
// Page-level API failures do not come through here: the page records them
// in its own state and the screen renders them in place.

import (
	"net"
	"net/http"
	"strings"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/logging"
	"github.com/JonMunkholm/universidad/internal/web/templates"
	"github.com/go-chi/render"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and answers with its user-facing message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	message := core.DisplayMessage(err)
	if wantsJSON(r) {
		render.Status(r, statusCode)
		render.JSON(w, r, ErrorResponse{
			Error:   message,
			Message: message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
		return
	}

	s.renderPage(w, r, statusCode, "Error", "", templates.ErrorAlert(message, userMsg.Action, userMsg.Code))
}

// writeError answers with a plain message and no error mapping.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Warn("http error", "status", status, "message", message, "path", r.URL.Path)

	if wantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, ErrorResponse{Error: message, Message: message})
		return
	}
	http.Error(w, message, status)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// clientIP returns the request's IP without port, as set by TrustedRealIP.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
