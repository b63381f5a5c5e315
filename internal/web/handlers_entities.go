package web

import (
	"net/http"
	"net/url"

	"github.com/JonMunkholm/universidad/internal/core/entities"
	"github.com/JonMunkholm/universidad/internal/schema"
	"github.com/JonMunkholm/universidad/internal/web/templates"
)

func (s *Server) facultadScreen() *screen[schema.Facultad, schema.FacultadRequest] {
	return &screen[schema.Facultad, schema.FacultadRequest]{
		srv:  s,
		base: "/facultades",
		page: func(sess *Session) pageOps[schema.Facultad, schema.FacultadRequest] {
			return sess.Facultades
		},
		filter: func(sess *Session, q url.Values) {
			sess.Facultades.Filter(entities.FacultadCriteriaFromQuery(q))
		},
		query: func(sess *Session) url.Values {
			return sess.Facultades.Filters().Query()
		},
		render: s.renderFacultades,
	}
}

func (s *Server) renderFacultades(w http.ResponseWriter, r *http.Request, status int, sess *Session, confirm *schema.Facultad) {
	page := sess.Facultades
	view := templates.FacultadesView{
		State:     page.Snapshot(),
		Criteria:  page.Filters(),
		CanDelete: page.CanDelete,
	}
	if confirm != nil {
		view.Confirm = confirm
		view.Prompt = page.ConfirmationPrompt(*confirm)
	}
	s.renderPage(w, r, status, "Facultades", "/facultades", templates.FacultadesPage(view))
}

func (s *Server) carreraScreen() *screen[schema.Carrera, schema.CarreraRequest] {
	return &screen[schema.Carrera, schema.CarreraRequest]{
		srv:  s,
		base: "/carreras",
		page: func(sess *Session) pageOps[schema.Carrera, schema.CarreraRequest] {
			return sess.Carreras
		},
		filter: func(sess *Session, q url.Values) {
			sess.Carreras.Filter(entities.CarreraCriteriaFromQuery(q))
		},
		query: func(sess *Session) url.Values {
			return sess.Carreras.Filters().Query()
		},
		render: s.renderCarreras,
	}
}

func (s *Server) renderCarreras(w http.ResponseWriter, r *http.Request, status int, sess *Session, confirm *schema.Carrera) {
	page := sess.Carreras
	view := templates.CarrerasView{
		State:           page.Snapshot(),
		Criteria:        page.Filters(),
		CanDelete:       page.CanDelete,
		Faculties:       page.Faculties(),
		ActiveFaculties: page.ActiveFaculties(),
	}
	if confirm != nil {
		view.Confirm = confirm
		view.Prompt = page.ConfirmationPrompt(*confirm)
	}
	s.renderPage(w, r, status, "Carreras", "/carreras", templates.CarrerasPage(view))
}
