package templates

import (
	"context"

	"github.com/JonMunkholm/universidad/internal/notify"
	"github.com/a-h/templ"
)

// NotificationList renders the live notifications, newest last, each with
// a dismiss button.
func NotificationList(notes []notify.Notification) templ.Component {
	return component(func(_ context.Context, p *writer) {
		for _, n := range notes {
			p.raw(`<div role="status"`)
			p.attr("class", "toast toast-"+string(n.Kind))
			p.attr("data-id", n.ID)
			p.raw(`><span>`)
			p.text(n.Message)
			p.raw(`</span><form method="post"`)
			p.attr("action", "/notificaciones/"+n.ID+"/cerrar")
			p.raw(`><button type="submit" class="toast-close" aria-label="Cerrar">&times;</button></form></div>`)
		}
	})
}
