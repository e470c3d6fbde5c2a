// Package templates renders the server-side pages as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
)

// writer accumulates the first write error so page code can stay linear.
type writer struct {
	w   io.Writer
	err error
}

func component(fn func(ctx context.Context, h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{w: w}
		fn(ctx, h)
		return h.err
	})
}

func (h *writer) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag; attrs are name/value pairs and empty values are skipped.
func (h *writer) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		h.raw(" " + attrs[i] + `="`)
		h.text(attrs[i+1])
		h.raw(`"`)
	}
	h.raw(">")
}

func (h *writer) close(tag string) {
	h.raw("</" + tag + ">")
}

// el writes a whole element with escaped text content.
func (h *writer) el(tag string, class string, content string) {
	h.open(tag, "class", class)
	h.text(content)
	h.close(tag)
}

func (h *writer) link(href string, content string) {
	h.open("a", "href", string(templ.URL(href)))
	h.text(content)
	h.close("a")
}

func (h *writer) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type field struct {
	Label    string
	Name     string
	Type     string
	Value    string
	Required bool
	Min      string
	Options  []option
	Rows     int
}

func (h *writer) field(f field) {
	h.open("label", "class", "field")
	h.el("span", "", f.Label)
	required := ""
	if f.Required {
		required = "required"
	}
	switch {
	case len(f.Options) > 0:
		h.open("select", "name", f.Name, "required", required)
		for _, opt := range f.Options {
			selected := ""
			if opt.Selected {
				selected = "selected"
			}
			h.open("option", "value", opt.Value, "selected", selected)
			h.text(opt.Label)
			h.close("option")
		}
		h.close("select")
	case f.Rows > 0:
		h.open("textarea", "name", f.Name, "rows", strconv.Itoa(f.Rows), "required", required)
		h.text(f.Value)
		h.close("textarea")
	default:
		typ := f.Type
		if typ == "" {
			typ = "text"
		}
		h.open("input", "type", typ, "name", f.Name, "value", f.Value, "min", f.Min, "required", required)
	}
	h.close("label")
}

func (h *writer) hidden(name string, value string) {
	h.open("input", "type", "hidden", "name", name, "value", value)
}

func (h *writer) checkbox(label string, name string, checked bool) {
	h.open("label", "class", "check")
	state := ""
	if checked {
		state = "checked"
	}
	h.open("input", "type", "checkbox", "name", name, "value", "on", "checked", state)
	h.text(" " + label)
	h.close("label")
}

func (h *writer) submit(label string) {
	h.open("button", "type", "submit")
	h.text(label)
	h.close("button")
}

// postForm wraps body in a POST form targeting action.
func (h *writer) postForm(action string, class string, body func()) {
	h.open("form", "method", "post", "action", string(templ.URL(action)), "class", class)
	body()
	h.close("form")
}

func tr(loc i18n.Localizer, key string, fallback string) string {
	return i18n.Text(loc, key, fallback)
}

func trf(loc i18n.Localizer, key string, format string, args ...any) string {
	return i18n.Textf(loc, key, format, args...)
}
