package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/universidad/internal/apiclient"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "validation failure",
			err:      fmt.Errorf("%w: nombre: Este campo es obligatorio", ErrInvalidForm),
			wantCode: "VAL001",
		},
		{
			name:     "bad request",
			err:      &apiclient.Error{StatusCode: 400},
			wantCode: "API400",
		},
		{
			name:     "not found wrapped",
			err:      fmt.Errorf("delete facultad 9: %w", &apiclient.Error{StatusCode: 404}),
			wantCode: "API404",
		},
		{
			name:     "conflict",
			err:      &apiclient.Error{StatusCode: 409, Message: "Ya existe"},
			wantCode: "API409",
		},
		{
			name:     "any 5xx",
			err:      &apiclient.Error{StatusCode: 503},
			wantCode: "API500",
		},
		{
			name:     "other status",
			err:      &apiclient.Error{StatusCode: 418},
			wantCode: "API000",
		},
		{
			name:     "connection refused",
			err:      fmt.Errorf("%w: GET /facultades: dial tcp 127.0.0.1:8080: connect: connection refused", apiclient.ErrTransport),
			wantCode: "NET001",
		},
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("%w: GET /carreras: %w", apiclient.ErrTransport, context.DeadlineExceeded),
			wantCode: "NET002",
		},
		{
			name:     "client timeout",
			err:      fmt.Errorf("%w: GET /carreras: Client.Timeout exceeded while awaiting headers", apiclient.ErrTransport),
			wantCode: "NET002",
		},
		{
			name:     "cancelled",
			err:      fmt.Errorf("%w: GET /carreras: %w", apiclient.ErrTransport, context.Canceled),
			wantCode: "NET003",
		},
		{
			name:     "other transport failure",
			err:      fmt.Errorf("%w: GET /carreras: no such host", apiclient.ErrTransport),
			wantCode: "NET000",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError().Code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantCode != "" && got.Message == "" {
				t.Error("MapError().Message is empty")
			}
		})
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"server message wins", &apiclient.Error{StatusCode: 409, Message: "Ya existe una facultad con el nombre: Ingeniería"}, "Ya existe una facultad con el nombre: Ingeniería"},
		{"generic fallback", &apiclient.Error{StatusCode: 500}, msgServer.Message},
		{"transport fallback", fmt.Errorf("%w: boom", apiclient.ErrTransport), msgTransport.Message},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayMessage(tt.err); got != tt.want {
				t.Errorf("DisplayMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
