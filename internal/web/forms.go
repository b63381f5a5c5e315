package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/go-chi/chi/v5"
)

// formValues collects the posted fields of a modal form. A checkbox that
// was not ticked is absent from the post and reads as "false".
func formValues(r *http.Request, fields, flags []string) (core.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	values := make(core.Values, len(fields))
	for _, f := range fields {
		values[f] = r.PostForm.Get(f)
	}
	for _, f := range flags {
		if _, ok := r.PostForm[f]; !ok {
			values[f] = "false"
		}
	}
	return values, nil
}

// idParam reads the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// listURL is the list screen keeping the loaded collection and criteria.
func listURL(base string, criteria url.Values) string {
	q := url.Values{}
	for k, v := range criteria {
		q[k] = v
	}
	q.Set("filtrar", "1")
	return base + "?" + q.Encode()
}

func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
