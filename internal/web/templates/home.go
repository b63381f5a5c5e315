package templates

import (
	"context"

	"github.com/a-h/templ"
)

// EntityCard is one dashboard tile.
type EntityCard struct {
	Label       string
	Path        string
	Description string
	Total       int
	Active      int
	Err         string // set when the counts could not be loaded
}

// Home renders the dashboard.
func Home(cards []EntityCard) templ.Component {
	return component(func(_ context.Context, p *writer) {
		p.raw(`<header class="page-header"><div><h2>Sistema de Gestión Universitaria</h2>`)
		p.raw(`<p class="muted">Administra facultades y carreras</p></div></header><div class="cards">`)
		for _, c := range cards {
			p.raw(`<a class="card card-link"`)
			p.attr("href", c.Path)
			p.raw(`><h5>`)
			p.text(c.Label)
			p.raw(`</h5><p class="muted">`)
			p.text(c.Description)
			p.raw(`</p>`)
			if c.Err != "" {
				p.raw(`<p class="alert alert-error">`)
				p.text(c.Err)
				p.raw(`</p>`)
			} else {
				p.rawf(`<p class="stats"><strong>%d</strong> registradas · <strong>%d</strong> activas</p>`, c.Total, c.Active)
			}
			p.raw(`</a>`)
		}
		p.raw(`</div>`)
	})
}
