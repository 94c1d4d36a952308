// Package screen implements the load / edit / validate / submit / list /
// delete / export cycle shared by every HRM console screen. A screen is
// declared once as a Definition and run per session as a Screen.
package screen

import (
	"context"
	"net/url"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
	"hrmconsole/internal/platform/export"
)

// Backend is the part of the REST client a screen uses.
type Backend interface {
	Do(ctx context.Context, method, path string, query url.Values, body any) (*backend.Envelope, error)
}

type Column = export.Column

type Definition struct {
	Name   string
	Title  string
	Entity string

	References []Reference
	Defaults   func(Refs) form.State
	Sections   map[string]form.State
	Derived    []Derived
	ReadOnly   []string
	Gates      []Gate
	Rules      []validate.Rule

	// Fields maps form fields to API fields. It is the body of submit steps
	// that declare no mapping of their own and the inverse used by Edit.
	Fields Mapping
	Submit []Step
	// LocalSubmit, when set, is shown as a success toast on submit and no
	// request is made.
	LocalSubmit    string
	SuccessMessage string

	List     *ListSpec
	Columns  []Column
	Edit     *EditSpec
	Delete   *DeleteSpec
	Template *TemplateSpec
}

// Reference is one option list loaded on mount, either from the backend or
// from a static list.
type Reference struct {
	Key    string
	Path   string
	Query  url.Values
	Table  string
	Value  string
	Label  string
	Active string
	Static []form.Option
}

type Derived struct {
	Name    string
	Compute func(form.State) string
}

// Step is one backend write issued on submit. GET steps send the mapped
// payload as query parameters.
type Step struct {
	Method  string
	Path    string
	Mapping Mapping
	Build   func(form.State) (any, error)
}

type ListSpec struct {
	Path   string
	Query  url.Values
	Table  string
	Key    string
	Row    func(rec backend.Record, refs Refs) map[string]string
	Search []string
}

// EditSpec fetches a detail record before repopulating the form. Without a
// Path the list record itself is restored through Definition.Fields.
type EditSpec struct {
	Path    string
	Param   string
	Restore func(tables map[string][]backend.Record, refs Refs) (form.State, error)
}

type DeleteSpec struct {
	Method string
	Path   string
	Param  string
	// LocalOnly skips the refetch after a successful delete.
	LocalOnly bool
}

type TemplateSpec struct {
	Sheet   string
	Headers []string
	Sample  []string
}

func (d *Definition) defaults(refs Refs) form.State {
	if d.Defaults == nil {
		return form.New(nil)
	}
	return d.Defaults(refs)
}

func (d *Definition) isDerived(field string) bool {
	for _, der := range d.Derived {
		if der.Name == field {
			return true
		}
	}
	return false
}

func (d *Definition) isReadOnly(field string) bool {
	if d.isDerived(field) {
		return true
	}
	for _, name := range d.ReadOnly {
		if name == field {
			return true
		}
	}
	return false
}

func (d *Definition) gateFor(field string) (Gate, bool) {
	for _, g := range d.Gates {
		if g.Field == field {
			return g, true
		}
	}
	return Gate{}, false
}

func (d *Definition) gatesTriggeredBy(field string) []Gate {
	var out []Gate
	for _, g := range d.Gates {
		if g.Trigger == field {
			out = append(out, g)
		}
	}
	return out
}

// optionRef names the option list backing a field, looking through nested
// row mappings for row fields.
func (d *Definition) optionRef(p form.Path) string {
	mapping := d.Fields
	name := p.Field
	if p.InRow() {
		for _, fm := range d.Fields {
			if fm.Form == p.Field {
				mapping = fm.Rows
				break
			}
		}
		name = p.Sub
	}
	for _, fm := range mapping {
		if fm.Form == name && fm.Ref != "" {
			return fm.Ref
		}
	}
	return name
}

func methodOrDefault(method, fallback string) string {
	if method == "" {
		return fallback
	}
	return method
}
