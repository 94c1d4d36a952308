package screen

import (
	"fmt"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/platform/backend"
)

// Refs holds the loaded option lists of a screen, keyed by reference key.
type Refs map[string][]form.Option

func (r Refs) Find(key, value string) (form.Option, bool) {
	return form.FindOption(r[key], value)
}

// Label resolves an id through an option list. Unresolvable ids render as
// "Unknown <noun> (<id>)"; blank ids render blank.
func (r Refs) Label(key, value, noun string) string {
	if value == "" {
		return ""
	}
	if opt, ok := r.Find(key, value); ok {
		return opt.Label
	}
	return fmt.Sprintf("Unknown %s (%s)", noun, value)
}

// Choice resolves an id into a selected option, keeping unknown ids
// selectable with the fallback label.
func (r Refs) Choice(key, value, noun string) form.Value {
	if value == "" {
		return form.Choice(form.Option{})
	}
	if opt, ok := r.Find(key, value); ok {
		return form.Choice(opt)
	}
	return form.Choice(form.Option{Value: value, Label: r.Label(key, value, noun)})
}

func (r Refs) clone() Refs {
	out := make(Refs, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// options maps backend rows into options for one reference.
func (ref Reference) options(rows []backend.Record) []form.Option {
	out := make([]form.Option, 0, len(rows))
	for _, rec := range rows {
		value := rec.String(ref.Value)
		if value == "" {
			continue
		}
		opt := form.Option{Value: value, Label: rec.String(ref.Label)}
		if ref.Active != "" {
			opt.Disabled = !rec.Bool(ref.Active)
		}
		out = append(out, opt)
	}
	return out
}
