package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/universidad/internal/schema"
)

// FacultadService wraps the /facultades resource.
type FacultadService struct {
	resource[schema.Facultad, schema.FacultadRequest]
}

// SearchByDean returns faculties whose dean matches decano.
func (s *FacultadService) SearchByDean(ctx context.Context, decano string) ([]schema.Facultad, error) {
	var out []schema.Facultad
	u := s.c.endpoint(url.Values{"decano": {decano}}, s.name, "buscar", "decano")
	if err := s.c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CarreraService wraps the /carreras resource.
type CarreraService struct {
	resource[schema.Carrera, schema.CarreraRequest]
}

// ListByFaculty returns the programs of one faculty.
func (s *CarreraService) ListByFaculty(ctx context.Context, facultadID int64, soloActivas bool) ([]schema.Carrera, error) {
	var out []schema.Carrera
	u := s.c.endpoint(activeQuery(soloActivas), s.name, "facultad", idSegment(facultadID))
	if err := s.c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByDuration returns programs lasting exactly semestres semesters.
func (s *CarreraService) SearchByDuration(ctx context.Context, semestres int) ([]schema.Carrera, error) {
	var out []schema.Carrera
	u := s.c.endpoint(nil, s.name, "buscar", "duracion", strconv.Itoa(semestres))
	if err := s.c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
