package workspace

import (
	"sort"

	"github.com/go-faster/errors"

	"hrmconsole/internal/domain/screen"
)

var ErrUnknownScreen = errors.New("unknown screen")

// Registry holds every screen definition the console serves.
type Registry struct {
	defs  map[string]*screen.Definition
	order []string
}

func NewRegistry(groups ...[]*screen.Definition) (*Registry, error) {
	r := &Registry{defs: map[string]*screen.Definition{}}
	for _, group := range groups {
		for _, def := range group {
			if _, dup := r.defs[def.Name]; dup {
				return nil, errors.Errorf("screen %q registered twice", def.Name)
			}
			r.defs[def.Name] = def
			r.order = append(r.order, def.Name)
		}
	}
	return r, nil
}

func (r *Registry) Lookup(name string) (*screen.Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScreen, "%q", name)
	}
	return def, nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Summary is one registered screen as listed to the browser.
type Summary struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	List     bool   `json:"list"`
	Template bool   `json:"template"`
}

// Summaries lists screens in registration order.
func (r *Registry) Summaries() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		out = append(out, Summary{Name: def.Name, Title: def.Title, List: def.List != nil, Template: def.Template != nil})
	}
	return out
}

func (r *Registry) Names() []string {
	out := append([]string{}, r.order...)
	sort.Strings(out)
	return out
}
