package templates

import (
	"context"

	"github.com/JonMunkholm/universidad/internal/notify"
	"github.com/a-h/templ"
)

// NavItem is one entry of the top navigation.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Layout wraps body in the console shell: navigation, the live
// notification area and the stream client.
func Layout(title string, nav []NavItem, notes []notify.Notification, body templ.Component) templ.Component {
	return component(func(ctx context.Context, p *writer) {
		p.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(` · Universidad</title>`)
		p.raw(`<link rel="stylesheet" href="/static/app.css">`)
		p.raw(`<script src="/static/app.js" defer></script>`)
		p.raw(`</head><body>`)

		p.raw(`<nav class="navbar"><a class="brand" href="/">Universidad</a><ul>`)
		for _, item := range nav {
			p.raw(`<li><a`)
			p.attr("href", item.Path)
			if item.Active {
				p.raw(` class="active" aria-current="page"`)
			}
			p.raw(`>`)
			p.text(item.Label)
			p.raw(`</a></li>`)
		}
		p.raw(`</ul></nav>`)

		p.raw(`<div id="notifications" class="notifications" data-stream="/notificaciones/stream">`)
		p.component(ctx, NotificationList(notes))
		p.raw(`</div>`)

		p.raw(`<main class="container">`)
		p.component(ctx, body)
		p.raw(`</main></body></html>`)
	})
}

// ErrorAlert renders a standalone error message with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(_ context.Context, p *writer) {
		p.raw(`<div class="alert alert-error" role="alert"><strong>`)
		p.text(message)
		p.raw(`</strong>`)
		if action != "" {
			p.raw(`<p>`)
			p.text(action)
			p.raw(`</p>`)
		}
		if code != "" {
			p.raw(`<small>Código: `)
			p.text(code)
			p.raw(`</small>`)
		}
		p.raw(`</div>`)
	})
}
