package templates

import (
	"context"
	"strconv"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/core/entities"
	"github.com/JonMunkholm/universidad/internal/schema"
	"github.com/a-h/templ"
)

// CarrerasView is everything the program screen renders.
type CarrerasView struct {
	State     core.State[schema.Carrera]
	Criteria  entities.CarreraCriteria
	CanDelete func(schema.Carrera) bool

	// Faculties feeds the filter select; ActiveFaculties the form select.
	Faculties       []schema.Facultad
	ActiveFaculties []schema.Facultad

	Confirm *schema.Carrera
	Prompt  string
}

// CarrerasPage renders the program list, its filters and any open dialog.
func CarrerasPage(v CarrerasView) templ.Component {
	return component(func(_ context.Context, p *writer) {
		query := filterQuery(v.Criteria.Query())
		back := withQuery("/carreras", query)

		p.pageHeader("Gestión de Carreras", "Administra las carreras académicas de la universidad",
			withQuery("/carreras/nueva", query), "Nueva Carrera", v.State.Loading)

		p.raw(`<form class="filters" method="get" action="/carreras"><input type="hidden" name="filtrar" value="1">`)
		p.searchInput("q", v.Criteria.Search, "Buscar carrera...", "Buscar por nombre")
		p.selectInput("facultad", "Facultad", v.Criteria.FacultadID, facultyOptions(v.Faculties, "Todas las facultades"), "")
		p.selectInput("estado", "Estado", string(v.Criteria.Status), statusOptions(), "")
		p.numberField("duracion", "Duración", v.Criteria.DuracionText(), "Semestres", "", 0, 0)
		p.raw(`<button type="submit" class="btn btn-outline">Filtrar</button>`)
		p.raw(`<a class="btn btn-outline" href="/carreras">Recargar</a></form>`)

		p.pageError(v.State.Error, withQuery("/carreras/error/cerrar", query))

		p.raw(`<section class="card"><header><h5>Lista de Carreras `)
		p.rawf(`<span class="badge">%d</span>`, len(v.State.Filtered))
		p.raw(`</h5></header>`)

		switch {
		case v.State.Loading && !v.State.Loaded:
			p.raw(`<p class="loading">Cargando carreras...</p>`)
		case len(v.State.Filtered) == 0:
			p.raw(`<p class="empty">No se encontraron carreras</p>`)
		default:
			p.raw(`<table class="table"><thead><tr><th>Nombre</th><th>Facultad</th><th>Duración</th><th>Título</th><th>Estado</th><th>Acciones</th></tr></thead><tbody>`)
			for _, c := range v.State.Filtered {
				id := strconv.FormatInt(c.CarreraID, 10)
				p.raw(`<tr><td><strong>`)
				p.text(c.Nombre)
				p.raw(`</strong>`)
				if c.Descripcion != "" {
					p.raw(`<br><small class="muted">`)
					p.text(c.Descripcion)
					p.raw(`</small>`)
				}
				p.raw(`</td><td><span class="badge">`)
				p.text(orDash(c.NombreFacultad))
				p.raw(`</span></td><td><span class="badge badge-info">`)
				p.rawf(`%d sem.`, c.DuracionSemestres)
				p.raw(`</span></td><td>`)
				p.text(orDash(c.TituloOtorgado))
				p.raw(`</td><td>`)
				p.statusBadge(c.Activo)
				p.raw(`</td>`)
				p.actions(
					withQuery("/carreras/"+id+"/editar", query),
					withQuery("/carreras/"+id+"/eliminar", query),
					v.CanDelete != nil && v.CanDelete(c),
				)
				p.raw(`</tr>`)
			}
			p.raw(`</tbody></table>`)
		}
		p.raw(`</section>`)

		if m := v.State.Modal; m.Open {
			title := "Nueva Carrera"
			if m.Mode == core.ModeEdit {
				title = "Editar Carrera"
			}
			p.openModal(title, withQuery("/carreras", query))
			p.textField("nombre", "Nombre *", m.Values.Get("nombre"), "Nombre de la carrera", m.Validation.ErrorFor("nombre"))
			p.selectInput("facultadId", "Facultad *", m.Values.Get("facultadId"),
				facultyOptions(v.ActiveFaculties, "Seleccionar facultad"), m.Validation.ErrorFor("facultadId"))
			p.numberField("duracionSemestres", "Duración (semestres) *", m.Values.Get("duracionSemestres"),
				"Duración en semestres", m.Validation.ErrorFor("duracionSemestres"), 1, 20)
			p.textField("tituloOtorgado", "Título Otorgado", m.Values.Get("tituloOtorgado"), "Título que se otorga", m.Validation.ErrorFor("tituloOtorgado"))
			p.checkboxField("activo", "Carrera activa", m.Values.Get("activo"))
			p.textareaField("descripcion", "Descripción", m.Values.Get("descripcion"), "Descripción de la carrera")
			p.closeModal(m.Mode, v.State.Submitting, withQuery("/carreras/modal/cerrar", query))
		}

		if v.Confirm != nil {
			id := strconv.FormatInt(v.Confirm.CarreraID, 10)
			p.confirmDialog(v.Prompt, withQuery("/carreras/"+id+"/eliminar", query), back)
		}
	})
}
