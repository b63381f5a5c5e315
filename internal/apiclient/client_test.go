package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/universidad/internal/schema"
	"github.com/go-chi/chi/v5/middleware"
)

// recorded captures what the fake API received.
type recorded struct {
	method string
	path   string
	query  string
	body   string
	header http.Header
}

func newTestClient(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body = string(b)
		rec.header = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api/v1", WithUserAgent("test-agent"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, rec
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("/api/v1"); err == nil {
		t.Fatal("New() expected error for relative base URL")
	}
}

func TestEndpointMapping(t *testing.T) {
	ctx := context.Background()
	req := schema.FacultadRequest{Nombre: "Ciencias", Activo: schema.Bool(true)}
	creq := schema.CarreraRequest{FacultadID: 2, Nombre: "Física", DuracionSemestres: 10}

	tests := []struct {
		name       string
		call       func(c *Client) error
		status     int
		response   string
		wantMethod string
		wantPath   string
		wantQuery  string
		wantBody   bool
	}{
		{
			name:       "list facultades",
			call:       func(c *Client) error { _, err := c.Facultades.List(ctx, false); return err },
			response:   `[]`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/facultades",
			wantQuery:  "soloActivas=false",
		},
		{
			name:       "list active carreras",
			call:       func(c *Client) error { _, err := c.Carreras.List(ctx, true); return err },
			response:   `[]`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/carreras",
			wantQuery:  "soloActivas=true",
		},
		{
			name:       "get by id",
			call:       func(c *Client) error { _, err := c.Facultades.Get(ctx, 7); return err },
			response:   `{"facultadId":7,"nombre":"X"}`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/facultades/7",
		},
		{
			name:       "create",
			call:       func(c *Client) error { _, err := c.Facultades.Create(ctx, req); return err },
			status:     http.StatusCreated,
			response:   `{"facultadId":9,"nombre":"Ciencias"}`,
			wantMethod: http.MethodPost,
			wantPath:   "/api/v1/facultades",
			wantBody:   true,
		},
		{
			name:       "update",
			call:       func(c *Client) error { _, err := c.Carreras.Update(ctx, 4, creq); return err },
			response:   `{"carreraId":4,"nombre":"Física"}`,
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/carreras/4",
			wantBody:   true,
		},
		{
			name:       "delete",
			call:       func(c *Client) error { return c.Carreras.Delete(ctx, 4) },
			status:     http.StatusNoContent,
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v1/carreras/4",
		},
		{
			name:       "search by name escapes the segment",
			call:       func(c *Client) error { _, err := c.Facultades.SearchByName(ctx, "Artes y Diseño"); return err },
			response:   `{"facultadId":1,"nombre":"Artes y Diseño"}`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/facultades/buscar/nombre/Artes y Diseño",
		},
		{
			name:       "search by dean",
			call:       func(c *Client) error { _, err := c.Facultades.SearchByDean(ctx, "Ruiz"); return err },
			response:   `[]`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/facultades/buscar/decano",
			wantQuery:  "decano=Ruiz",
		},
		{
			name:       "list by faculty",
			call:       func(c *Client) error { _, err := c.Carreras.ListByFaculty(ctx, 3, true); return err },
			response:   `[]`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/carreras/facultad/3",
			wantQuery:  "soloActivas=true",
		},
		{
			name:       "search by duration",
			call:       func(c *Client) error { _, err := c.Carreras.SearchByDuration(ctx, 8); return err },
			response:   `[]`,
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/carreras/buscar/duracion/8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.status
			if status == 0 {
				status = http.StatusOK
			}
			c, rec := newTestClient(t, status, tt.response)
			if err := tt.call(c); err != nil {
				t.Fatalf("call error = %v", err)
			}
			if rec.method != tt.wantMethod {
				t.Errorf("method = %s, want %s", rec.method, tt.wantMethod)
			}
			if rec.path != tt.wantPath {
				t.Errorf("path = %q, want %q", rec.path, tt.wantPath)
			}
			if rec.query != tt.wantQuery {
				t.Errorf("query = %q, want %q", rec.query, tt.wantQuery)
			}
			if tt.wantBody && rec.body == "" {
				t.Error("expected a JSON body")
			}
			if !tt.wantBody && rec.body != "" {
				t.Errorf("unexpected body %q", rec.body)
			}
			if got := rec.header.Get("User-Agent"); got != "test-agent" {
				t.Errorf("User-Agent = %q, want test-agent", got)
			}
		})
	}
}

func TestCreate_SendsRequestDTO(t *testing.T) {
	c, rec := newTestClient(t, http.StatusCreated, `{"carreraId":11,"facultadId":2,"nombre":"Física","duracionSemestres":10,"nombreFacultad":"Ciencias"}`)

	got, err := c.Carreras.Create(context.Background(), schema.CarreraRequest{
		FacultadID: 2, Nombre: "Física", DuracionSemestres: 10, Activo: schema.Bool(true),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.CarreraID != 11 || got.NombreFacultad != "Ciencias" {
		t.Errorf("Create() = %+v", got)
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(rec.body), &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if sent["facultadId"] != float64(2) || sent["duracionSemestres"] != float64(10) || sent["activo"] != true {
		t.Errorf("sent body = %v", sent)
	}
	if _, ok := sent["carreraId"]; ok {
		t.Error("request DTO must not carry server-assigned fields")
	}
	if ct := rec.header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantOK      bool
	}{
		{
			name:        "server message",
			status:      http.StatusConflict,
			body:        `{"status":409,"error":"Conflict","message":"Ya existe una facultad con ese nombre"}`,
			wantMessage: "Ya existe una facultad con ese nombre",
			wantOK:      true,
		},
		{
			name:   "empty body",
			status: http.StatusInternalServerError,
			body:   ``,
		},
		{
			name:   "non json body",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.status, tt.body)
			_, err := c.Facultades.List(context.Background(), false)
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			msg, ok := Message(err)
			if ok != tt.wantOK || msg != tt.wantMessage {
				t.Errorf("Message() = %q, %v; want %q, %v", msg, ok, tt.wantMessage, tt.wantOK)
			}
			if StatusCode(err) != tt.status {
				t.Errorf("StatusCode() = %d", StatusCode(err))
			}
		})
	}
}

func TestValidationDetails(t *testing.T) {
	c, _ := newTestClient(t, http.StatusBadRequest,
		`{"status":400,"error":"Validation Error","message":"Datos de entrada inválidos","details":{"nombre":"El nombre de la carrera es obligatorio"}}`)

	_, err := c.Carreras.Create(context.Background(), schema.CarreraRequest{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Details["nombre"] != "El nombre de la carrera es obligatorio" {
		t.Errorf("Details = %v", apiErr.Details)
	}
	if apiErr.Reason != "Validation Error" {
		t.Errorf("Reason = %q", apiErr.Reason)
	}
}

func TestNonStringDetailsKeepMessage(t *testing.T) {
	c, _ := newTestClient(t, http.StatusConflict,
		`{"status":409,"error":"Conflict","message":"La facultad tiene carreras asociadas","details":{"carreras":3}}`)

	err := c.Facultades.Delete(context.Background(), 4)
	if msg, ok := Message(err); !ok || msg != "La facultad tiene carreras asociadas" {
		t.Errorf("Message() = %q, %v", msg, ok)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Details != nil {
		t.Errorf("Details = %v, want nil", apiErr.Details)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = c.Facultades.List(context.Background(), false)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("error = %v, want ErrTransport", err)
	}
	if _, ok := Message(err); ok {
		t.Error("transport errors carry no server message")
	}
}

func TestForwardsRequestID(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `[]`)
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "abc-123")

	if _, err := c.Carreras.List(ctx, false); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := rec.header.Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("X-Request-Id = %q, want abc-123", got)
	}
}

func TestDecodeFailure(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `{not json`)
	_, err := c.Facultades.Get(context.Background(), 1)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, ErrTransport) {
		t.Error("decode errors are not transport errors")
	}
}
