package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/universidad/internal/apiclient"
	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/logging"
	"github.com/go-chi/chi/v5"
)

// pageOps is the part of an entity page the screen handlers drive.
type pageOps[T any, R any] interface {
	Activate(ctx context.Context) error
	Loaded() bool
	OpenCreate()
	OpenEdit(id int64) error
	CloseModal()
	DismissError()
	Submit(ctx context.Context, values core.Values) error
	Delete(ctx context.Context, id int64, confirmed bool) error
	Find(id int64) (T, bool)
	Binding() core.Binding[T, R]
}

// screen binds one entity page to its routes. The page of each request
// comes from the browser session.
type screen[T any, R any] struct {
	srv  *Server
	base string

	page func(*Session) pageOps[T, R]

	// filter applies list query parameters to the session's page.
	filter func(*Session, url.Values)

	// query returns the session's current criteria as list parameters.
	query func(*Session) url.Values

	// render writes the screen, with confirm set while a delete awaits
	// confirmation.
	render func(w http.ResponseWriter, r *http.Request, status int, sess *Session, confirm *T)
}

func mountScreen[T any, R any](r chi.Router, sc *screen[T, R]) {
	r.Get("/", sc.list)
	r.Post("/", sc.submit)
	r.Get("/nueva", sc.openCreate)
	r.Post("/modal/cerrar", sc.closeModal)
	r.Post("/error/cerrar", sc.dismissError)
	r.Get("/{id}/editar", sc.openEdit)
	r.Get("/{id}/eliminar", sc.confirm)
	r.Post("/{id}/eliminar", sc.remove)
}

// list activates the screen with the modal closed, or with filtrar=1 only
// re-derives the view from the loaded collection.
func (sc *screen[T, R]) list(w http.ResponseWriter, r *http.Request) {
	sess := sc.srv.sessions.Get(w, r)
	q := r.URL.Query()

	sc.filter(sess, q)
	if q.Get("filtrar") != "1" {
		sc.page(sess).CloseModal()
		sc.activate(r.Context(), sess)
	} else {
		sc.ensureLoaded(r.Context(), sess)
	}

	sc.render(w, r, http.StatusOK, sess, nil)
}

func (sc *screen[T, R]) openCreate(w http.ResponseWriter, r *http.Request) {
	sess := sc.srv.sessions.Get(w, r)
	sc.ensureLoaded(r.Context(), sess)

	sc.page(sess).OpenCreate()
	sc.render(w, r, http.StatusOK, sess, nil)
}

func (sc *screen[T, R]) openEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sess := sc.srv.sessions.Get(w, r)
	sc.ensureLoaded(r.Context(), sess)

	if err := sc.page(sess).OpenEdit(id); err != nil {
		sc.srv.respondError(w, r, err, http.StatusNotFound)
		return
	}
	sc.render(w, r, http.StatusOK, sess, nil)
}

func (sc *screen[T, R]) closeModal(w http.ResponseWriter, r *http.Request) {
	sess := sc.srv.sessions.Get(w, r)
	sc.page(sess).CloseModal()
	seeOther(w, r, listURL(sc.base, sc.query(sess)))
}

func (sc *screen[T, R]) dismissError(w http.ResponseWriter, r *http.Request) {
	sess := sc.srv.sessions.Get(w, r)
	sc.page(sess).DismissError()
	seeOther(w, r, listURL(sc.base, sc.query(sess)))
}

func (sc *screen[T, R]) submit(w http.ResponseWriter, r *http.Request) {
	sess := sc.srv.sessions.Get(w, r)
	page := sc.page(sess)
	binding := page.Binding()

	values, err := formValues(r, binding.Fields, binding.Flags)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = page.Submit(r.Context(), values)
	switch {
	case err == nil, errors.Is(err, core.ErrModalClosed):
		seeOther(w, r, listURL(sc.base, sc.query(sess)))
	case errors.Is(err, core.ErrInvalidForm):
		sc.render(w, r, http.StatusUnprocessableEntity, sess, nil)
	case errors.Is(err, core.ErrSubmitting):
		sc.render(w, r, http.StatusConflict, sess, nil)
	default:
		logging.WithFields(r.Context(), "entity", binding.Plural).Warn("save failed", "error", err)
		sc.render(w, r, failureStatus(err), sess, nil)
	}
}

func (sc *screen[T, R]) confirm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sess := sc.srv.sessions.Get(w, r)
	sc.ensureLoaded(r.Context(), sess)
	page := sc.page(sess)

	item, ok := page.Find(id)
	if !ok {
		sc.srv.respondError(w, r, core.ErrNotFound, http.StatusNotFound)
		return
	}
	if !page.Binding().Active(item) {
		sc.srv.respondError(w, r, core.ErrDeleteNotAllowed, http.StatusConflict)
		return
	}
	sc.render(w, r, http.StatusOK, sess, &item)
}

func (sc *screen[T, R]) remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sess := sc.srv.sessions.Get(w, r)
	sc.ensureLoaded(r.Context(), sess)
	page := sc.page(sess)

	err = page.Delete(r.Context(), id, r.PostForm.Get("confirmar") == "si")
	switch {
	case err == nil:
		seeOther(w, r, listURL(sc.base, sc.query(sess)))
	case errors.Is(err, core.ErrNotConfirmed):
		seeOther(w, r, sc.base+"/"+strconv.FormatInt(id, 10)+"/eliminar")
	case errors.Is(err, core.ErrNotFound):
		sc.srv.respondError(w, r, err, http.StatusNotFound)
	case errors.Is(err, core.ErrDeleteNotAllowed):
		sc.srv.respondError(w, r, err, http.StatusConflict)
	default:
		logging.WithFields(r.Context(), "entity", page.Binding().Plural).Warn("delete failed", "id", id, "error", err)
		sc.render(w, r, failureStatus(err), sess, nil)
	}
}

// activate loads the screen; failures are already in the page state.
func (sc *screen[T, R]) activate(ctx context.Context, sess *Session) {
	if err := sc.page(sess).Activate(ctx); err != nil {
		logging.WithFields(ctx, "entity", sc.page(sess).Binding().Plural).Warn("load failed", "error", err)
	}
}

// ensureLoaded activates a screen reached without ever being listed, e.g.
// through a bookmarked edit link.
func (sc *screen[T, R]) ensureLoaded(ctx context.Context, sess *Session) {
	if !sc.page(sess).Loaded() {
		sc.activate(ctx, sess)
	}
}

// failureStatus is the response status of a screen re-rendered after an
// API failure: client errors pass through, anything else is a bad gateway.
func failureStatus(err error) int {
	if code := apiclient.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
