// Package masters declares the master-data screens: locations, branches,
// departments and the other lookup tables the rest of the console refers to.
package masters

import (
	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
)

// Definitions returns every master screen in menu order.
func Definitions() []*screen.Definition {
	return []*screen.Definition{
		Location(),
		Branch(),
		Department(),
		Designation(),
		Category(),
		Grade(),
		Bank(),
		College(),
		Shift(),
		Holiday(),
		LeaveType(),
	}
}

var (
	text  = form.Text("")
	none  = form.Choice(form.Option{})
	unset = form.Flag(false)
)

// crud fills in the save, list, edit and GET-delete wiring every master
// shares. name is the backend entity, e.g. "Location" for SaveLocation.
func crud(def *screen.Definition, name, key string) *screen.Definition {
	def.Submit = []screen.Step{{Path: "/api/Master/Save" + name}}
	if def.List == nil {
		def.List = &screen.ListSpec{}
	}
	def.List.Path = "/api/Master/Get" + name
	def.List.Key = key
	def.Edit = &screen.EditSpec{}
	def.Delete = &screen.DeleteSpec{Path: "/api/Master/Delete" + name, Param: key}
	return def
}

// reference is an option list fed by one of the master lists.
func reference(key, name, idColumn, labelColumn string) screen.Reference {
	return screen.Reference{
		Key:   key,
		Path:  "/api/Master/Get" + name,
		Value: idColumn,
		Label: labelColumn,
	}
}
