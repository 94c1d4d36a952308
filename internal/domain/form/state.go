package form

import (
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrNotSection   = errors.New("field is not a repeatable section")
	ErrRowIndex     = errors.New("row index out of range")
	ErrProtectedRow = errors.New("the first row cannot be removed")
)

// State is an immutable set of field values. Every mutation returns a new
// State that copies only the branch it touches, so untouched fields and rows
// keep their identity.
type State struct {
	values map[string]Value
}

func New(values map[string]Value) State {
	copied := make(map[string]Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return State{values: copied}
}

func (s State) Get(field string) Value {
	return s.values[field]
}

func (s State) Has(field string) bool {
	_, ok := s.values[field]
	return ok
}

func (s State) Len() int {
	return len(s.values)
}

func (s State) Text(field string) string {
	return s.values[field].String()
}

func (s State) Option(field string) Option {
	return s.values[field].Option
}

func (s State) Flag(field string) bool {
	return s.values[field].Flag
}

func (s State) Rows(field string) []State {
	return s.values[field].Rows
}

func (s State) File(field string) *File {
	return s.values[field].File
}

// Decimal parses the field as a number; anything non-numeric counts as zero.
func (s State) Decimal(field string) decimal.Decimal {
	return ParseDecimal(s.Text(field))
}

func (s State) Date(field string) (time.Time, bool) {
	return ParseDate(s.Text(field))
}

// Fields lists field names in a stable order.
func (s State) Fields() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s State) Set(field string, v Value) State {
	next := make(map[string]Value, len(s.values)+1)
	for k, val := range s.values {
		next[k] = val
	}
	next[field] = v
	return State{values: next}
}

// Merge overlays every value of other onto s in one copy.
func (s State) Merge(other State) State {
	next := make(map[string]Value, len(s.values)+len(other.values))
	for k, val := range s.values {
		next[k] = val
	}
	for k, val := range other.values {
		next[k] = val
	}
	return State{values: next}
}

func (s State) SetAt(p Path, v Value) (State, error) {
	if !p.InRow() {
		return s.Set(p.Field, v), nil
	}
	section := s.values[p.Field]
	if section.Kind != KindRows {
		return s, errors.Wrapf(ErrNotSection, "set %s", p)
	}
	if p.Index >= len(section.Rows) {
		return s, errors.Wrapf(ErrRowIndex, "set %s", p)
	}
	rows := make([]State, len(section.Rows))
	copy(rows, section.Rows)
	rows[p.Index] = rows[p.Index].Set(p.Sub, v)
	return s.Set(p.Field, Rows(rows...)), nil
}

// AddRow appends a copy of blank to the section.
func (s State) AddRow(section string, blank State) (State, error) {
	current := s.values[section]
	if current.Kind != KindRows && current.Kind != KindEmpty {
		return s, errors.Wrapf(ErrNotSection, "add row to %s", section)
	}
	rows := make([]State, len(current.Rows), len(current.Rows)+1)
	copy(rows, current.Rows)
	rows = append(rows, New(blank.values))
	return s.Set(section, Rows(rows...)), nil
}

// RemoveRow drops the row at index. The first row is protected so a section
// always keeps at least one entry.
func (s State) RemoveRow(section string, index int) (State, error) {
	current := s.values[section]
	if current.Kind != KindRows {
		return s, errors.Wrapf(ErrNotSection, "remove row from %s", section)
	}
	if index < 0 || index >= len(current.Rows) {
		return s, errors.Wrapf(ErrRowIndex, "remove %s[%d]", section, index)
	}
	if index == 0 {
		return s, errors.Wrapf(ErrProtectedRow, "remove %s[0]", section)
	}
	rows := make([]State, 0, len(current.Rows)-1)
	rows = append(rows, current.Rows[:index]...)
	rows = append(rows, current.Rows[index+1:]...)
	return s.Set(section, Rows(rows...)), nil
}

func ParseDecimal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
