package templates

import (
	"context"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/core/entities"
	"github.com/JonMunkholm/universidad/internal/schema"
	"github.com/a-h/templ"
)

// FacultadesView is everything the faculty screen renders.
type FacultadesView struct {
	State     core.State[schema.Facultad]
	Criteria  entities.FacultadCriteria
	CanDelete func(schema.Facultad) bool

	// Confirm is the faculty awaiting delete confirmation, if any.
	Confirm *schema.Facultad
	Prompt  string
}

// FacultadesPage renders the faculty list, its filters and any open dialog.
func FacultadesPage(v FacultadesView) templ.Component {
	return component(func(_ context.Context, p *writer) {
		query := filterQuery(v.Criteria.Query())
		back := withQuery("/facultades", query)

		p.pageHeader("Gestión de Facultades", "Administra las facultades de la universidad",
			withQuery("/facultades/nueva", query), "Nueva Facultad", v.State.Loading)

		p.raw(`<form class="filters" method="get" action="/facultades"><input type="hidden" name="filtrar" value="1">`)
		p.searchInput("q", v.Criteria.Search, "Buscar facultad...", "Buscar por nombre, decano o ubicación")
		p.selectInput("estado", "Estado", string(v.Criteria.Status), statusOptions(), "")
		p.raw(`<button type="submit" class="btn btn-outline">Filtrar</button>`)
		p.raw(`<a class="btn btn-outline" href="/facultades">Recargar</a></form>`)

		p.pageError(v.State.Error, withQuery("/facultades/error/cerrar", query))

		p.raw(`<section class="card"><header><h5>Lista de Facultades `)
		p.rawf(`<span class="badge">%d</span>`, len(v.State.Filtered))
		p.raw(`</h5></header>`)

		switch {
		case v.State.Loading && !v.State.Loaded:
			p.raw(`<p class="loading">Cargando facultades...</p>`)
		case len(v.State.Filtered) == 0:
			p.raw(`<p class="empty">No se encontraron facultades</p>`)
		default:
			p.raw(`<table class="table"><thead><tr><th>Nombre</th><th>Decano</th><th>Ubicación</th><th>Registro</th><th>Estado</th><th>Acciones</th></tr></thead><tbody>`)
			for _, f := range v.State.Filtered {
				id := strconv.FormatInt(f.FacultadID, 10)
				p.raw(`<tr><td><strong>`)
				p.text(f.Nombre)
				p.raw(`</strong>`)
				if f.Descripcion != "" {
					p.raw(`<br><small class="muted">`)
					p.text(f.Descripcion)
					p.raw(`</small>`)
				}
				p.raw(`</td><td>`)
				p.text(orDash(f.Decano))
				p.raw(`</td><td>`)
				p.text(orDash(f.Ubicacion))
				p.raw(`</td><td>`)
				p.text(f.FechaRegistro.Display())
				p.raw(`</td><td>`)
				p.statusBadge(f.Activo)
				p.raw(`</td>`)
				p.actions(
					withQuery("/facultades/"+id+"/editar", query),
					withQuery("/facultades/"+id+"/eliminar", query),
					v.CanDelete != nil && v.CanDelete(f),
				)
				p.raw(`</tr>`)
			}
			p.raw(`</tbody></table>`)
		}
		p.raw(`</section>`)

		if m := v.State.Modal; m.Open {
			title := "Nueva Facultad"
			if m.Mode == core.ModeEdit {
				title = "Editar Facultad"
			}
			p.openModal(title, withQuery("/facultades", query))
			p.textField("nombre", "Nombre *", m.Values.Get("nombre"), "Nombre de la facultad", m.Validation.ErrorFor("nombre"))
			p.textField("decano", "Decano", m.Values.Get("decano"), "Nombre del decano", m.Validation.ErrorFor("decano"))
			p.textField("ubicacion", "Ubicación", m.Values.Get("ubicacion"), "Ubicación de la facultad", m.Validation.ErrorFor("ubicacion"))
			p.checkboxField("activo", "Facultad activa", m.Values.Get("activo"))
			p.textareaField("descripcion", "Descripción", m.Values.Get("descripcion"), "Descripción de la facultad")
			p.closeModal(m.Mode, v.State.Submitting, withQuery("/facultades/modal/cerrar", query))
		}

		if v.Confirm != nil {
			id := strconv.FormatInt(v.Confirm.FacultadID, 10)
			p.confirmDialog(v.Prompt, withQuery("/facultades/"+id+"/eliminar", query), back)
		}
	})
}

// filterQuery encodes filter criteria as a navigation query that keeps
// the loaded collection.
func filterQuery(q url.Values) string {
	q.Set("filtrar", "1")
	return q.Encode()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
