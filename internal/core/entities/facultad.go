package entities

import (
	"context"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/universidad/internal/apiclient"
	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/schema"
)

func init() {
	core.Register(core.EntityInfo{
		Key:         "facultades",
		Label:       "Facultades",
		Path:        "/facultades",
		Description: "Facultades académicas, su ubicación y decano",
		Order:       1,
		Stats: func(ctx context.Context, c *apiclient.Client) (core.Stats, error) {
			items, err := c.Facultades.List(ctx, false)
			if err != nil {
				return core.Stats{}, err
			}
			return countStats(items, schema.Facultad.IsActive), nil
		},
	})
}

// FacultadBinding describes faculties to the generic page.
func FacultadBinding() core.Binding[schema.Facultad, schema.FacultadRequest] {
	return core.Binding[schema.Facultad, schema.FacultadRequest]{
		Singular: "facultad",
		Plural:   "facultades",
		ID:       func(f schema.Facultad) int64 { return f.FacultadID },
		Name:     func(f schema.Facultad) string { return f.Nombre },
		Active:   schema.Facultad.IsActive,
		Fields:   []string{"nombre", "descripcion", "ubicacion", "decano", "activo"},
		Flags:    []string{"activo"},
		Form: core.Schema{
			core.Field("nombre", core.Required(), core.MaxLength(100)),
			core.Field("ubicacion", core.MaxLength(100)),
			core.Field("decano", core.MaxLength(100)),
		},
		Defaults: func() core.Values {
			return core.Values{
				"nombre":      "",
				"descripcion": "",
				"ubicacion":   "",
				"decano":      "",
				"activo":      "true",
			}
		},
		Values: func(f schema.Facultad) core.Values {
			return core.Values{
				"nombre":      f.Nombre,
				"descripcion": f.Descripcion,
				"ubicacion":   f.Ubicacion,
				"decano":      f.Decano,
				"activo":      formatFlag(f.Activo),
			}
		},
		Decode: func(v core.Values) (schema.FacultadRequest, error) {
			return decodeRequest[schema.FacultadRequest](v, "activo")
		},
	}
}

// FacultadCriteria filters faculties by free text over name, dean and
// location, and by status.
type FacultadCriteria struct {
	Search string
	Status core.Status
}

// FacultadCriteriaFromQuery reads the q and estado parameters.
func FacultadCriteriaFromQuery(q url.Values) FacultadCriteria {
	return FacultadCriteria{
		Search: q.Get("q"),
		Status: core.ParseStatus(q.Get("estado")),
	}
}

// Matches reports whether f passes every criterion.
func (c FacultadCriteria) Matches(f schema.Facultad) bool {
	if !core.ContainsFold(c.Search, f.Nombre, f.Decano, f.Ubicacion) {
		return false
	}
	return c.Status.Matches(statusFlags(f.Activo))
}

// Query encodes the criteria back into filter parameters.
func (c FacultadCriteria) Query() url.Values {
	q := url.Values{}
	if c.Search != "" {
		q.Set("q", c.Search)
	}
	if c.Status != "" && c.Status != core.StatusAll {
		q.Set("estado", string(c.Status))
	}
	return q
}

// FacultadesPage is the faculty screen of one session.
type FacultadesPage struct {
	*core.Page[schema.Facultad, schema.FacultadRequest]
}

// NewFacultadesPage creates the faculty screen over svc.
func NewFacultadesPage(svc core.Service[schema.Facultad, schema.FacultadRequest], n core.Notifier) *FacultadesPage {
	return &FacultadesPage{Page: core.NewPage(svc, FacultadBinding(), n)}
}

// Activate loads the collection, as on every navigation to the screen.
func (p *FacultadesPage) Activate(ctx context.Context) error {
	return p.Load(ctx)
}

// Filter replaces the criteria and re-derives the view without reloading.
func (p *FacultadesPage) Filter(c FacultadCriteria) {
	p.SetFilter(c)
}

// Filters returns the criteria last passed to Filter.
func (p *FacultadesPage) Filters() FacultadCriteria {
	if c, ok := p.Criteria().(FacultadCriteria); ok {
		return c
	}
	return FacultadCriteria{Status: core.StatusAll}
}

func countStats[T any](items []T, active func(T) bool) core.Stats {
	s := core.Stats{Total: len(items)}
	for _, item := range items {
		if active(item) {
			s.Active++
		}
	}
	return s
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
