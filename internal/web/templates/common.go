package templates

import (
	"strconv"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/schema"
)

// option is one entry of a select input.
type option struct {
	Value string
	Label string
}

func statusOptions() []option {
	return []option{
		{string(core.StatusAll), "Todas"},
		{string(core.StatusActive), "Solo Activas"},
		{string(core.StatusInactive), "Solo Inactivas"},
	}
}

func facultyOptions(items []schema.Facultad, placeholder string) []option {
	opts := make([]option, 0, len(items)+1)
	opts = append(opts, option{"", placeholder})
	for _, f := range items {
		opts = append(opts, option{strconv.FormatInt(f.FacultadID, 10), f.Nombre})
	}
	return opts
}

func (p *writer) pageHeader(title, subtitle, newPath, newLabel string, disabled bool) {
	p.raw(`<header class="page-header"><div><h2>`)
	p.text(title)
	p.raw(`</h2><p class="muted">`)
	p.text(subtitle)
	p.raw(`</p></div>`)
	if disabled {
		p.raw(`<span class="btn btn-primary disabled" aria-disabled="true">`)
		p.text(newLabel)
		p.raw(`</span>`)
	} else {
		p.raw(`<a class="btn btn-primary"`)
		p.attr("href", newPath)
		p.raw(`>`)
		p.text(newLabel)
		p.raw(`</a>`)
	}
	p.raw(`</header>`)
}

// pageError shows the page error with a button posting to dismiss.
func (p *writer) pageError(msg, dismiss string) {
	if msg == "" {
		return
	}
	p.raw(`<div class="alert alert-error alert-dismissible" role="alert"><span>`)
	p.text(msg)
	p.raw(`</span><form method="post"`)
	p.attr("action", dismiss)
	p.raw(`><button type="submit" class="alert-close" aria-label="Cerrar">&times;</button></form></div>`)
}

func (p *writer) searchInput(name, value, placeholder, label string) {
	p.raw(`<label class="field"><span>`)
	p.text(label)
	p.raw(`</span><input type="search"`)
	p.attr("name", name)
	p.attr("value", value)
	p.attr("placeholder", placeholder)
	p.raw(`></label>`)
}

func (p *writer) selectInput(name, label, selected string, opts []option, invalid string) {
	p.raw(`<label class="field"><span>`)
	p.text(label)
	p.raw(`</span><select`)
	p.attr("name", name)
	if invalid != "" {
		p.raw(` class="is-invalid"`)
	}
	p.raw(`>`)
	for _, o := range opts {
		p.raw(`<option`)
		p.attr("value", o.Value)
		if o.Value == selected {
			p.raw(` selected`)
		}
		p.raw(`>`)
		p.text(o.Label)
		p.raw(`</option>`)
	}
	p.raw(`</select>`)
	p.fieldError(invalid)
	p.raw(`</label>`)
}

func (p *writer) textField(name, label, value, placeholder, invalid string) {
	p.raw(`<label class="field"><span>`)
	p.text(label)
	p.raw(`</span><input type="text"`)
	p.attr("name", name)
	p.attr("value", value)
	p.attr("placeholder", placeholder)
	if invalid != "" {
		p.raw(` class="is-invalid"`)
	}
	p.raw(`>`)
	p.fieldError(invalid)
	p.raw(`</label>`)
}

func (p *writer) numberField(name, label, value, placeholder, invalid string, min, max int) {
	p.raw(`<label class="field"><span>`)
	p.text(label)
	p.raw(`</span><input type="number"`)
	p.attr("name", name)
	p.attr("value", value)
	p.attr("placeholder", placeholder)
	if min != 0 || max != 0 {
		p.rawf(` min="%d" max="%d"`, min, max)
	}
	if invalid != "" {
		p.raw(` class="is-invalid"`)
	}
	p.raw(`>`)
	p.fieldError(invalid)
	p.raw(`</label>`)
}

func (p *writer) textareaField(name, label, value, placeholder string) {
	p.raw(`<label class="field field-wide"><span>`)
	p.text(label)
	p.raw(`</span><textarea rows="3"`)
	p.attr("name", name)
	p.attr("placeholder", placeholder)
	p.raw(`>`)
	p.text(value)
	p.raw(`</textarea></label>`)
}

func (p *writer) checkboxField(name, label, value string) {
	p.raw(`<label class="check"><input type="checkbox" value="true"`)
	p.attr("name", name)
	if value == "true" {
		p.raw(` checked`)
	}
	p.raw(`> `)
	p.text(label)
	p.raw(`</label>`)
}

func (p *writer) fieldError(msg string) {
	if msg == "" {
		return
	}
	p.raw(`<small class="invalid-feedback">`)
	p.text(msg)
	p.raw(`</small>`)
}

func (p *writer) statusBadge(active *bool) {
	switch {
	case active == nil:
		p.raw(`<span class="badge">Sin estado</span>`)
	case *active:
		p.raw(`<span class="badge badge-active">Activa</span>`)
	default:
		p.raw(`<span class="badge badge-inactive">Inactiva</span>`)
	}
}

// openModal starts the create/edit dialog and its form.
func (p *writer) openModal(title, action string) {
	p.raw(`<div class="modal-backdrop"><div class="modal" role="dialog" aria-modal="true"><header><h5>`)
	p.text(title)
	p.raw(`</h5></header><form method="post" class="modal-form"`)
	p.attr("action", action)
	p.raw(`>`)
}

// closeModal ends the dialog opened by openModal.
func (p *writer) closeModal(mode core.Mode, submitting bool, cancelAction string) {
	label := "Crear"
	if mode == core.ModeEdit {
		label = "Actualizar"
	}
	p.raw(`<footer><button type="submit" class="btn btn-secondary"`)
	p.attr("formaction", cancelAction)
	p.raw(` formnovalidate>Cancelar</button><button type="submit" class="btn btn-primary"`)
	if submitting {
		p.raw(` disabled>Guardando...`)
	} else {
		p.raw(`>`)
		p.text(label)
	}
	p.raw(`</button></footer></form></div></div>`)
}

// confirmDialog renders the delete confirmation for one entity.
func (p *writer) confirmDialog(prompt, action, cancel string) {
	p.raw(`<div class="modal-backdrop"><div class="modal modal-sm" role="alertdialog" aria-modal="true"><header><h5>Confirmar eliminación</h5></header><p>`)
	p.text(prompt)
	p.raw(`</p><form method="post"`)
	p.attr("action", action)
	p.raw(`><input type="hidden" name="confirmar" value="si"><footer><a class="btn btn-secondary"`)
	p.attr("href", cancel)
	p.raw(`>Cancelar</a><button type="submit" class="btn btn-danger">Eliminar</button></footer></form></div></div>`)
}

func (p *writer) actions(editPath, deletePath string, canDelete bool) {
	p.raw(`<td class="actions"><a class="btn btn-sm btn-outline" title="Editar"`)
	p.attr("href", editPath)
	p.raw(`>Editar</a>`)
	if canDelete {
		p.raw(`<a class="btn btn-sm btn-outline-danger" title="Eliminar"`)
		p.attr("href", deletePath)
		p.raw(`>Eliminar</a>`)
	}
	p.raw(`</td>`)
}

// withQuery appends an encoded query to path.
func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
