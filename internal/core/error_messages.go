package core

// error_messages.go maps technical errors to user-facing text.
//
// Codes are grouped by category so an operator can quote them:
//
//	VAL001 - Form validation failed (never reaches the API)
//	API400 - The API rejected the submitted data
//	API404 - The record no longer exists
//	API409 - A record with the same name already exists
//	API500 - The API failed internally (any 5xx)
//	API000 - Any other non-2xx status
//	NET001 - Connection refused
//	NET002 - Timed out waiting for the API
//	NET003 - Request cancelled
//	NET000 - Any other transport failure
//	ERR000 - Fallback when nothing matches
//
// Status-based codes are resolved first, then transport patterns, which
// are matched case-insensitively with strings.Contains; the first match
// wins.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/universidad/internal/apiclient"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgValidation = UserMessage{"Hay campos del formulario con errores", "Corrija los campos marcados", "VAL001"}
	msgBadRequest = UserMessage{"Datos de entrada inválidos", "Revise los datos enviados", "API400"}
	msgNotFound   = UserMessage{"El registro no existe", "Recargue la lista", "API404"}
	msgConflict   = UserMessage{"Ya existe un registro con ese nombre", "Use un nombre distinto", "API409"}
	msgServer     = UserMessage{"Ha ocurrido un error interno en el servidor", "Intente de nuevo más tarde", "API500"}
	msgAPIOther   = UserMessage{"La API respondió con un error", "Intente de nuevo", "API000"}
	msgTransport  = UserMessage{"Error de red al contactar la API", "Verifique la conexión e intente de nuevo", "NET000"}
	msgUnknown    = UserMessage{"Ha ocurrido un error inesperado", "Intente de nuevo o contacte a soporte", "ERR000"}
)

// transportPatterns refine transport failures; order matters.
var transportPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"connection refused", UserMessage{"No se pudo conectar con la API", "Verifique que el servicio esté disponible", "NET001"}},
	{"deadline exceeded", UserMessage{"La API tardó demasiado en responder", "Intente de nuevo en unos momentos", "NET002"}},
	{"timeout", UserMessage{"La API tardó demasiado en responder", "Intente de nuevo en unos momentos", "NET002"}},
	{"context canceled", UserMessage{"La solicitud fue cancelada", "Intente de nuevo", "NET003"}},
}

// MapError converts a technical error into a user-friendly message.
// Returns the zero UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if errors.Is(err, ErrInvalidForm) {
		return msgValidation
	}

	if status := apiclient.StatusCode(err); status != 0 {
		switch {
		case status == http.StatusBadRequest:
			return msgBadRequest
		case status == http.StatusNotFound:
			return msgNotFound
		case status == http.StatusConflict:
			return msgConflict
		case status >= 500:
			return msgServer
		default:
			return msgAPIOther
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range transportPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	if errors.Is(err, apiclient.ErrTransport) {
		return msgTransport
	}
	return msgUnknown
}

// DisplayMessage returns the text shown to the operator for err: the
// server-supplied message when present, otherwise the mapped message.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := apiclient.Message(err); ok {
		return msg
	}
	return MapError(err).Message
}
