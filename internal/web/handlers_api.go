package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/core/entities"
	"github.com/JonMunkholm/universidad/internal/schema"
	"github.com/go-chi/render"
)

// The read-only JSON views fetch a fresh collection on every call and apply
// the same criteria as the screens. soloActivas=true is passed through to
// the API.

func (s *Server) handleAPIFacultades(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	items, err := s.api.Facultades.List(r.Context(), soloActivas(q.Get("soloActivas")))
	if err != nil {
		s.respondError(w, r, err, failureStatus(err))
		return
	}

	criteria := entities.FacultadCriteriaFromQuery(q)
	render.JSON(w, r, core.Apply(items, core.Criteria[schema.Facultad](criteria)))
}

func (s *Server) handleAPICarreras(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	items, err := s.api.Carreras.List(r.Context(), soloActivas(q.Get("soloActivas")))
	if err != nil {
		s.respondError(w, r, err, failureStatus(err))
		return
	}

	criteria := entities.CarreraCriteriaFromQuery(q)
	render.JSON(w, r, core.Apply(items, core.Criteria[schema.Carrera](criteria)))
}

func soloActivas(raw string) bool {
	b, _ := strconv.ParseBool(raw)
	return b
}
