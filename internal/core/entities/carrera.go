package entities

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/JonMunkholm/universidad/internal/apiclient"
	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/logging"
	"github.com/JonMunkholm/universidad/internal/schema"
	"golang.org/x/sync/errgroup"
)

func init() {
	core.Register(core.EntityInfo{
		Key:         "carreras",
		Label:       "Carreras",
		Path:        "/carreras",
		Description: "Programas académicos, duración y título otorgado",
		Order:       2,
		Stats: func(ctx context.Context, c *apiclient.Client) (core.Stats, error) {
			items, err := c.Carreras.List(ctx, false)
			if err != nil {
				return core.Stats{}, err
			}
			return countStats(items, schema.Carrera.IsActive), nil
		},
	})
}

// CarreraBinding describes programs to the generic page.
func CarreraBinding() core.Binding[schema.Carrera, schema.CarreraRequest] {
	return core.Binding[schema.Carrera, schema.CarreraRequest]{
		Singular: "carrera",
		Plural:   "carreras",
		ID:       func(c schema.Carrera) int64 { return c.CarreraID },
		Name:     func(c schema.Carrera) string { return c.Nombre },
		Active:   schema.Carrera.IsActive,
		Fields:   []string{"nombre", "facultadId", "duracionSemestres", "tituloOtorgado", "activo", "descripcion"},
		Flags:    []string{"activo"},
		Form: core.Schema{
			core.Field("nombre", core.Required(), core.MaxLength(100)),
			core.Field("facultadId", core.Required(), core.Integer()),
			core.Field("duracionSemestres", core.Required(), core.Range(1, 20)),
			core.Field("tituloOtorgado", core.MaxLength(100)),
		},
		Defaults: func() core.Values {
			return core.Values{
				"facultadId":        "",
				"nombre":            "",
				"descripcion":       "",
				"duracionSemestres": "",
				"tituloOtorgado":    "",
				"activo":            "true",
			}
		},
		Values: func(c schema.Carrera) core.Values {
			return core.Values{
				"facultadId":        idString(c.FacultadID),
				"nombre":            c.Nombre,
				"descripcion":       c.Descripcion,
				"duracionSemestres": idString(int64(c.DuracionSemestres)),
				"tituloOtorgado":    c.TituloOtorgado,
				"activo":            formatFlag(c.Activo),
			}
		},
		Decode: func(v core.Values) (schema.CarreraRequest, error) {
			return decodeRequest[schema.CarreraRequest](v, "activo")
		},
	}
}

// CarreraCriteria filters programs by free text over name, faculty name
// and degree title, by status, by faculty and by exact duration.
type CarreraCriteria struct {
	Search     string
	Status     core.Status
	FacultadID string // select value; empty means every faculty
	Duracion   *int   // nil means no duration filter
}

// CarreraCriteriaFromQuery reads the q, estado, facultad and duracion
// parameters.
func CarreraCriteriaFromQuery(q url.Values) CarreraCriteria {
	return CarreraCriteria{
		Search:     q.Get("q"),
		Status:     core.ParseStatus(q.Get("estado")),
		FacultadID: strings.TrimSpace(q.Get("facultad")),
		Duracion:   core.ParseExactInt(q.Get("duracion")),
	}
}

// Matches reports whether c passes every criterion.
func (cr CarreraCriteria) Matches(c schema.Carrera) bool {
	if !core.ContainsFold(cr.Search, c.Nombre, c.NombreFacultad, c.TituloOtorgado) {
		return false
	}
	if !core.MatchesID(cr.FacultadID, c.FacultadID) {
		return false
	}
	if !cr.Status.Matches(statusFlags(c.Activo)) {
		return false
	}
	return cr.Duracion == nil || c.DuracionSemestres == *cr.Duracion
}

// DuracionText renders the duration filter for its input.
func (cr CarreraCriteria) DuracionText() string {
	if cr.Duracion == nil {
		return ""
	}
	return idString(int64(*cr.Duracion))
}

// Query encodes the criteria back into filter parameters.
func (cr CarreraCriteria) Query() url.Values {
	q := url.Values{}
	if cr.Search != "" {
		q.Set("q", cr.Search)
	}
	if cr.Status != "" && cr.Status != core.StatusAll {
		q.Set("estado", string(cr.Status))
	}
	if cr.FacultadID != "" {
		q.Set("facultad", cr.FacultadID)
	}
	if d := cr.DuracionText(); d != "" {
		q.Set("duracion", d)
	}
	return q
}

// FacultyLister lists faculties for the program screen's selects.
type FacultyLister interface {
	List(ctx context.Context, soloActivas bool) ([]schema.Facultad, error)
}

// CarrerasPage is the program screen of one session. Besides programs it
// keeps every faculty for the filter select and the active ones for the
// form select.
type CarrerasPage struct {
	*core.Page[schema.Carrera, schema.CarreraRequest]

	faculties FacultyLister

	mu     sync.RWMutex
	all    []schema.Facultad
	active []schema.Facultad
}

// NewCarrerasPage creates the program screen over svc and faculties.
func NewCarrerasPage(svc core.Service[schema.Carrera, schema.CarreraRequest], faculties FacultyLister, n core.Notifier) *CarrerasPage {
	return &CarrerasPage{
		Page:      core.NewPage(svc, CarreraBinding(), n),
		faculties: faculties,
	}
}

// Activate loads programs and both faculty lists concurrently. A faculty
// failure is logged and leaves the previous faculty lists in place; only
// the program load decides the result.
func (p *CarrerasPage) Activate(ctx context.Context) error {
	var (
		g        errgroup.Group
		all      []schema.Facultad
		active   []schema.Facultad
		allOK    bool
		activeOK bool
		callCtx  = context.WithoutCancel(ctx)
		logger   = logging.WithFields(ctx, "entity", "carreras")
	)

	g.Go(func() error {
		items, err := p.faculties.List(callCtx, false)
		if err != nil {
			logger.Warn("failed to load faculties for filter", "error", err)
			return nil
		}
		all, allOK = items, true
		return nil
	})
	g.Go(func() error {
		items, err := p.faculties.List(callCtx, true)
		if err != nil {
			logger.Warn("failed to load active faculties for form", "error", err)
			return nil
		}
		active, activeOK = items, true
		return nil
	})
	g.Go(func() error {
		return p.Load(ctx)
	})

	err := g.Wait()

	p.mu.Lock()
	if allOK {
		p.all = all
	}
	if activeOK {
		p.active = active
	}
	p.mu.Unlock()

	return err
}

// Faculties returns every faculty, for the filter select.
func (p *CarrerasPage) Faculties() []schema.Facultad {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]schema.Facultad(nil), p.all...)
}

// ActiveFaculties returns the active faculties, for the form select.
func (p *CarrerasPage) ActiveFaculties() []schema.Facultad {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]schema.Facultad(nil), p.active...)
}

// Filter replaces the criteria and re-derives the view without reloading.
func (p *CarrerasPage) Filter(c CarreraCriteria) {
	p.SetFilter(c)
}

// Filters returns the criteria last passed to Filter.
func (p *CarrerasPage) Filters() CarreraCriteria {
	if c, ok := p.Criteria().(CarreraCriteria); ok {
		return c
	}
	return CarreraCriteria{Status: core.StatusAll}
}
