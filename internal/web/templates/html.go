// Package templates holds the templ components of the console.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so components can emit markup
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (p *writer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *writer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *writer) rawf(format string, args ...any) {
	p.raw(fmt.Sprintf(format, args...))
}

// attr writes name="value" with value escaped.
func (p *writer) attr(name, value string) {
	p.rawf(` %s="%s"`, name, templ.EscapeString(value))
}

func (p *writer) component(ctx context.Context, c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

// component builds a templ.Component from a render function.
func component(fn func(ctx context.Context, p *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{w: w}
		fn(ctx, p)
		return p.err
	})
}
