package screen

import (
	"context"

	"github.com/go-faster/errors"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/platform/backend"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrReadOnly        = errors.New("field is read-only")
	ErrFieldDisabled   = errors.New("field is disabled")
	ErrUnknownSection  = errors.New("unknown section")
	ErrUnknownOption   = errors.New("unknown option")
	ErrOptionDisabled  = errors.New("option is disabled")
	ErrUnknownRow      = errors.New("unknown row")
	ErrNoPendingDelete = errors.New("no delete is pending")
	ErrNotSupported    = errors.New("not supported by this screen")
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConfirming Phase = "confirming"
)

// DeleteState is the confirm dialog: the pending row key and whether the
// dialog is open.
type DeleteState struct {
	Phase   Phase  `json:"phase"`
	Pending string `json:"pendingKey,omitempty"`
}

// ListRow is a display-ready projection of one backend record.
type ListRow struct {
	Key    string            `json:"key"`
	Cells  map[string]string `json:"cells"`
	Record backend.Record    `json:"-"`
}

// Gate enables Field only after a lookup driven by Trigger succeeds.
type Gate struct {
	Trigger string
	Field   string
	// Fills lists the read-only fields the lookup populates; they are
	// cleared when the lookup fails.
	Fills  []string
	Lookup func(ctx context.Context, b Backend, s form.State) (Resolution, error)
}

// Resolution is the result of a gate lookup.
type Resolution struct {
	Found bool
	Min   string
	Fill  form.State
}

type GateState struct {
	Enabled bool   `json:"enabled"`
	Pending bool   `json:"pending"`
	Min     string `json:"min,omitempty"`
}

// State is everything one screen instance holds.
type State struct {
	Form     form.State
	Options  Refs
	Rows     []ListRow
	Filtered []ListRow
	Query    string
	Editing  string
	Delete   DeleteState
	Gates    map[string]GateState
}

// Initial is the state before mount: empty lists everywhere, never nil.
func (d *Definition) Initial() State {
	st := State{
		Form:     d.defaults(Refs{}),
		Options:  Refs{},
		Rows:     []ListRow{},
		Filtered: []ListRow{},
		Delete:   DeleteState{Phase: PhaseIdle},
		Gates:    map[string]GateState{},
	}
	for _, ref := range d.References {
		st.Options[ref.Key] = []form.Option{}
	}
	for _, g := range d.Gates {
		st.Gates[g.Field] = GateState{}
	}
	return st
}

func findRow(rows []ListRow, key string) (ListRow, bool) {
	for _, row := range rows {
		if row.Key == key {
			return row, true
		}
	}
	return ListRow{}, false
}

func withoutRow(rows []ListRow, key string) []ListRow {
	out := make([]ListRow, 0, len(rows))
	for _, row := range rows {
		if row.Key != key {
			out = append(out, row)
		}
	}
	return out
}
