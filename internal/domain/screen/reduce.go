package screen

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"hrmconsole/internal/domain/form"
)

// Action is one state transition handled by Definition.Reduce.
type Action interface {
	action()
}

type SetField struct {
	Path  form.Path
	Value form.Value
}

type AddRow struct {
	Section string
}

type RemoveRow struct {
	Section string
	Index   int
}

type Search struct {
	Query string
}

type Edit struct {
	Key  string
	Form form.State
}

type RequestDelete struct {
	Key string
}

type CancelDelete struct{}

// FinishDelete closes the dialog; Removed drops the row from both lists.
type FinishDelete struct {
	Key     string
	Removed bool
}

type Reset struct{}

type OptionsLoaded struct {
	Key     string
	Options []form.Option
}

type ListLoaded struct {
	Rows []ListRow
}

type GateResolved struct {
	Field      string
	Resolution Resolution
}

func (SetField) action()      {}
func (AddRow) action()        {}
func (RemoveRow) action()     {}
func (Search) action()        {}
func (Edit) action()          {}
func (RequestDelete) action() {}
func (CancelDelete) action()  {}
func (FinishDelete) action()  {}
func (Reset) action()         {}
func (OptionsLoaded) action() {}
func (ListLoaded) action()    {}
func (GateResolved) action()  {}

// Reduce is the only way screen state changes. It never performs I/O.
func (d *Definition) Reduce(st State, a Action) (State, error) {
	switch act := a.(type) {
	case SetField:
		return d.setField(st, act)

	case AddRow:
		blank, ok := d.Sections[act.Section]
		if !ok {
			return st, errors.Wrapf(ErrUnknownSection, "add row to %q", act.Section)
		}
		next, err := st.Form.AddRow(act.Section, blank)
		if err != nil {
			return st, err
		}
		st.Form = next

	case RemoveRow:
		if _, ok := d.Sections[act.Section]; !ok {
			return st, errors.Wrapf(ErrUnknownSection, "remove row from %q", act.Section)
		}
		next, err := st.Form.RemoveRow(act.Section, act.Index)
		if err != nil {
			return st, err
		}
		st.Form = next

	case Search:
		st.Query = act.Query
		st.Filtered = d.filter(st.Rows, act.Query)

	case Edit:
		st.Form = act.Form
		st.Editing = act.Key
		gates := make(map[string]GateState, len(d.Gates))
		for _, g := range d.Gates {
			gates[g.Field] = GateState{Pending: !act.Form.Get(g.Trigger).IsBlank()}
		}
		st.Gates = gates

	case RequestDelete:
		if _, ok := findRow(st.Rows, act.Key); !ok {
			return st, errors.Wrapf(ErrUnknownRow, "delete %q", act.Key)
		}
		st.Delete = DeleteState{Phase: PhaseConfirming, Pending: act.Key}

	case CancelDelete:
		st.Delete = DeleteState{Phase: PhaseIdle}

	case FinishDelete:
		if act.Removed {
			st.Rows = withoutRow(st.Rows, act.Key)
			st.Filtered = withoutRow(st.Filtered, act.Key)
		}
		st.Delete = DeleteState{Phase: PhaseIdle}

	case Reset:
		st.Form = d.defaults(st.Options)
		st.Editing = ""
		gates := make(map[string]GateState, len(d.Gates))
		for _, g := range d.Gates {
			gates[g.Field] = GateState{}
		}
		st.Gates = gates

	case OptionsLoaded:
		opts := act.Options
		if opts == nil {
			opts = []form.Option{}
		}
		refs := st.Options.clone()
		refs[act.Key] = opts
		st.Options = refs

	case ListLoaded:
		rows := act.Rows
		if rows == nil {
			rows = []ListRow{}
		}
		st.Rows = rows
		st.Filtered = d.filter(rows, st.Query)

	case GateResolved:
		g, ok := d.gateFor(act.Field)
		if !ok {
			return st, errors.Errorf("no gate for %q", act.Field)
		}
		gates := cloneGates(st.Gates)
		res := act.Resolution
		if res.Found {
			gates[g.Field] = GateState{Enabled: true, Min: res.Min}
			st.Form = st.Form.Merge(res.Fill)
		} else {
			gates[g.Field] = GateState{}
			st.Form = clearFills(st.Form, g)
		}
		st.Gates = gates

	default:
		return st, errors.Errorf("unhandled action %T", a)
	}
	return st, nil
}

func (d *Definition) setField(st State, act SetField) (State, error) {
	p := act.Path
	if !p.InRow() {
		if !st.Form.Has(p.Field) {
			return st, errors.Wrapf(ErrUnknownField, "set %q", p.Field)
		}
		if d.isReadOnly(p.Field) {
			return st, errors.Wrapf(ErrReadOnly, "set %q", p.Field)
		}
		if _, gated := d.gateFor(p.Field); gated && !st.Gates[p.Field].Enabled {
			return st, errors.Wrapf(ErrFieldDisabled, "set %q", p.Field)
		}
	}

	current := st.Form.Get(p.Field)
	if p.InRow() {
		if current.Kind != form.KindRows || p.Index >= len(current.Rows) {
			return st, errors.Wrapf(form.ErrRowIndex, "set %s", p)
		}
		current = current.Rows[p.Index].Get(p.Sub)
	}
	value, err := d.coerce(st.Options, p, current, act.Value)
	if err != nil {
		return st, err
	}

	next, err := st.Form.SetAt(p, value)
	if err != nil {
		return st, err
	}
	st.Form = next

	if !p.InRow() {
		triggered := d.gatesTriggeredBy(p.Field)
		if len(triggered) > 0 {
			gates := cloneGates(st.Gates)
			for _, g := range triggered {
				gates[g.Field] = GateState{Pending: true}
				st.Form = clearFills(st.Form, g).Set(g.Field, form.Text(""))
			}
			st.Gates = gates
		}
	}
	return st, nil
}

// coerce adapts plain text input to the kind a field already holds, so a
// client can send an option id or "true" instead of a full value.
func (d *Definition) coerce(refs Refs, p form.Path, current, incoming form.Value) (form.Value, error) {
	switch current.Kind {
	case form.KindOption:
		if incoming.Kind != form.KindText && incoming.Kind != form.KindOption {
			break
		}
		id := incoming.String()
		if strings.TrimSpace(id) == "" {
			return form.Choice(form.Option{}), nil
		}
		opt, ok := refs.Find(d.optionRef(p), id)
		if !ok {
			return form.Value{}, errors.Wrapf(ErrUnknownOption, "%s=%q", p, id)
		}
		if opt.Disabled {
			return form.Value{}, errors.Wrapf(ErrOptionDisabled, "%s=%q", p, id)
		}
		return form.Choice(opt), nil
	case form.KindFlag:
		if incoming.Kind == form.KindText {
			b, err := strconv.ParseBool(strings.TrimSpace(incoming.Text))
			if err != nil {
				return form.Value{}, errors.Wrapf(err, "set %s", p)
			}
			return form.Flag(b), nil
		}
	case form.KindRows:
		if incoming.Kind != form.KindRows {
			return form.Value{}, errors.Wrapf(form.ErrNotSection, "set %s", p)
		}
	}
	return incoming, nil
}

// clearFills blanks the fields a gate lookup populated.
func clearFills(s form.State, g Gate) form.State {
	for _, name := range g.Fills {
		s = s.Set(name, form.Text(""))
	}
	return s
}

func cloneGates(in map[string]GateState) map[string]GateState {
	out := make(map[string]GateState, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
