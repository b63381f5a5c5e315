package entities

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/schema"
)

func TestFacultadCriteria_Matches(t *testing.T) {
	eng := schema.Facultad{FacultadID: 1, Nombre: "Engineering", Decano: "Dra. Pérez", Ubicacion: "Campus Norte", Activo: schema.Bool(true)}
	arts := schema.Facultad{FacultadID: 2, Nombre: "Arts", Decano: "Dr. López", Ubicacion: "Centro", Activo: schema.Bool(false)}
	legacy := schema.Facultad{FacultadID: 3, Nombre: "Legacy"}

	tests := []struct {
		name     string
		criteria FacultadCriteria
		want     []int64
	}{
		{"no criteria", FacultadCriteria{}, []int64{1, 2, 3}},
		{"inactive only", FacultadCriteria{Status: core.StatusInactive}, []int64{2}},
		{"active only", FacultadCriteria{Status: core.StatusActive}, []int64{1}},
		{"search by dean", FacultadCriteria{Search: "lópez"}, []int64{2}},
		{"search by location", FacultadCriteria{Search: "NORTE"}, []int64{1}},
		{"whitespace search", FacultadCriteria{Search: "   "}, []int64{1, 2, 3}},
		{"search and status", FacultadCriteria{Search: "a", Status: core.StatusActive}, []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.Apply([]schema.Facultad{eng, arts, legacy}, core.Criteria[schema.Facultad](tt.criteria))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d faculties, want %d", len(got), len(tt.want))
			}
			for i, f := range got {
				if f.FacultadID != tt.want[i] {
					t.Errorf("got[%d] = %d, want %d", i, f.FacultadID, tt.want[i])
				}
			}
		})
	}
}

func TestFacultadCriteriaFromQuery(t *testing.T) {
	c := FacultadCriteriaFromQuery(url.Values{"q": {"ing"}, "estado": {"inactive"}})
	if c.Search != "ing" || c.Status != core.StatusInactive {
		t.Errorf("FacultadCriteriaFromQuery() = %+v", c)
	}
	if got := c.Query().Encode(); got != "estado=inactive&q=ing" {
		t.Errorf("Query() = %q", got)
	}
	if got := (FacultadCriteria{Status: core.StatusAll}).Query().Encode(); got != "" {
		t.Errorf("Query() of empty criteria = %q", got)
	}
}

func TestFacultadBinding_Form(t *testing.T) {
	b := FacultadBinding()

	tests := []struct {
		name      string
		values    core.Values
		wantField string
	}{
		{"blank name", core.Values{"nombre": ""}, "nombre"},
		{"long location", core.Values{"nombre": "Artes", "ubicacion": strings.Repeat("x", 101)}, "ubicacion"},
		{"valid", core.Values{"nombre": "Artes", "decano": "Dr. López"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := b.Form.Validate(tt.values)
			if tt.wantField == "" {
				if !result.Valid {
					t.Errorf("Validate() errors = %v, want valid", result.Errors)
				}
				return
			}
			if result.ErrorFor(tt.wantField) == "" {
				t.Errorf("no error for %s: %v", tt.wantField, result.Errors)
			}
		})
	}

	if got := b.Defaults(); got.Get("activo") != "true" || got.Get("nombre") != "" {
		t.Errorf("Defaults() = %v", got)
	}
}

func TestFacultadBinding_ValuesAndDecode(t *testing.T) {
	b := FacultadBinding()
	f := schema.Facultad{
		FacultadID:  4,
		Nombre:      "Medicina",
		Descripcion: "Ciencias de la salud",
		Ubicacion:   "Hospital",
		Decano:      "Dra. Ruiz",
		Activo:      schema.Bool(false),
	}

	v := b.Values(f)
	want := core.Values{
		"nombre":      "Medicina",
		"descripcion": "Ciencias de la salud",
		"ubicacion":   "Hospital",
		"decano":      "Dra. Ruiz",
		"activo":      "false",
	}
	for k, w := range want {
		if v.Get(k) != w {
			t.Errorf("Values()[%s] = %q, want %q", k, v.Get(k), w)
		}
	}

	v["nombre"] = "  Medicina Humana  "
	v["activo"] = "on"
	req, err := b.Decode(v)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Nombre != "Medicina Humana" {
		t.Errorf("Nombre = %q, want trimmed", req.Nombre)
	}
	if req.Activo == nil || !*req.Activo {
		t.Errorf("Activo = %v, want true", req.Activo)
	}

	delete(v, "activo")
	req, err = b.Decode(v)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Activo == nil || *req.Activo {
		t.Errorf("Activo = %v, want false for an unticked box", req.Activo)
	}
}

func TestFacultadBinding_AbsentFlagRendersUnticked(t *testing.T) {
	v := FacultadBinding().Values(schema.Facultad{Nombre: "Legacy"})
	if v.Get("activo") != "false" {
		t.Errorf("activo = %q, want false", v.Get("activo"))
	}
}

type facultadService struct {
	items   []schema.Facultad
	err     error
	deleted []int64
}

func (s *facultadService) List(_ context.Context, soloActivas bool) ([]schema.Facultad, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !soloActivas {
		return s.items, nil
	}
	return core.Apply(s.items, core.Criteria[schema.Facultad](FacultadCriteria{Status: core.StatusActive})), nil
}

func (s *facultadService) Create(_ context.Context, req schema.FacultadRequest) (schema.Facultad, error) {
	f := schema.Facultad{FacultadID: int64(len(s.items) + 1), Nombre: req.Nombre, Activo: req.Activo}
	s.items = append(s.items, f)
	return f, nil
}

func (s *facultadService) Update(_ context.Context, id int64, req schema.FacultadRequest) (schema.Facultad, error) {
	return schema.Facultad{FacultadID: id, Nombre: req.Nombre}, nil
}

func (s *facultadService) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestFacultadesPage(t *testing.T) {
	svc := &facultadService{items: []schema.Facultad{
		{FacultadID: 1, Nombre: "Engineering", Activo: schema.Bool(true)},
		{FacultadID: 2, Nombre: "Arts", Activo: schema.Bool(false)},
	}}
	p := NewFacultadesPage(svc, nil)

	if err := p.Activate(context.Background()); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if got := p.Filters(); got.Status != core.StatusAll {
		t.Errorf("Filters() = %+v, want all", got)
	}

	p.Filter(FacultadCriteria{Status: core.StatusInactive})
	s := p.Snapshot()
	if len(s.Filtered) != 1 || s.Filtered[0].Nombre != "Arts" {
		t.Errorf("Filtered = %v, want [Arts]", s.Filtered)
	}
	if got := p.Filters(); got.Status != core.StatusInactive {
		t.Errorf("Filters() = %+v", got)
	}

	if err := p.Delete(context.Background(), 2, true); !errors.Is(err, core.ErrDeleteNotAllowed) {
		t.Errorf("Delete(inactive) error = %v", err)
	}
	if err := p.Delete(context.Background(), 1, true); err != nil {
		t.Errorf("Delete(active) error = %v", err)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != 1 {
		t.Errorf("deleted = %v, want [1]", svc.deleted)
	}
}
