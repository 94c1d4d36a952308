package screen

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-faster/errors"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
	"hrmconsole/internal/platform/export"
)

const DefaultDebounce = 500 * time.Millisecond

type Option func(*Screen)

// WithDebounce sets the quiet period before gate lookups fire. Zero runs
// lookups synchronously.
func WithDebounce(d time.Duration) Option {
	return func(s *Screen) { s.debounce = d }
}

// Screen is one mounted instance of a Definition. Backend calls are made
// without holding the lock; their results are applied through Reduce.
type Screen struct {
	def      *Definition
	backend  Backend
	notify   Notifier
	debounce time.Duration

	mu        sync.Mutex
	state     State
	debouncer map[string]*debouncer
}

func New(def *Definition, b Backend, n Notifier, opts ...Option) *Screen {
	s := &Screen{
		def:       def,
		backend:   b,
		notify:    n,
		debounce:  DefaultDebounce,
		state:     def.Initial(),
		debouncer: map[string]*debouncer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, g := range def.Gates {
		s.debouncer[g.Field] = newDebouncer(s.debounce)
	}
	return s
}

func (s *Screen) Definition() *Definition {
	return s.def
}

// State returns a snapshot.
func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Screen) apply(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.def.Reduce(s.state, a)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Screen) toast(level Level, message string) {
	if s.notify == nil {
		return
	}
	s.notify.Notify(Toast{Level: level, Message: message, Screen: s.def.Name})
}

func (s *Screen) fail(err error) {
	s.toast(LevelError, Message(err))
}

// Mount loads every reference list, resets the form and loads the list.
// A reference that cannot be loaded becomes an empty list and a toast.
func (s *Screen) Mount(ctx context.Context) {
	type loaded struct {
		key  string
		opts []form.Option
		err  error
	}
	results := make([]loaded, len(s.def.References))
	var wg sync.WaitGroup
	for i, ref := range s.def.References {
		if ref.Static != nil {
			results[i] = loaded{key: ref.Key, opts: ref.Static}
			continue
		}
		wg.Add(1)
		go func(i int, ref Reference) {
			defer wg.Done()
			opts, err := s.loadReference(ctx, ref)
			results[i] = loaded{key: ref.Key, opts: opts, err: err}
		}(i, ref)
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			s.fail(r.err)
		}
		_ = s.apply(OptionsLoaded{Key: r.key, Options: r.opts})
	}
	_ = s.apply(Reset{})
	s.Reload(ctx)
}

func (s *Screen) loadReference(ctx context.Context, ref Reference) ([]form.Option, error) {
	env, err := s.backend.Do(ctx, http.MethodGet, ref.Path, ref.Query, nil)
	if err != nil {
		return nil, err
	}
	rows, err := table(env, ref.Table)
	if err != nil {
		return nil, err
	}
	return ref.options(rows), nil
}

func table(env *backend.Envelope, name string) ([]backend.Record, error) {
	if name == "" {
		name = "table"
	}
	rows, err := env.Table(name)
	if err != nil {
		return nil, &backend.Error{Kind: backend.ErrParse, Message: "Invalid response from server", Err: err}
	}
	return rows, nil
}

// Update sets one field. Editing a gate trigger schedules its lookup.
func (s *Screen) Update(ctx context.Context, p form.Path, v form.Value) error {
	if err := s.apply(SetField{Path: p, Value: v}); err != nil {
		return err
	}
	if p.InRow() {
		return nil
	}
	for _, g := range s.def.gatesTriggeredBy(p.Field) {
		field := g.Field
		bg := context.WithoutCancel(ctx)
		s.debouncer[field].schedule(func() { s.Lookup(bg, field) })
	}
	return nil
}

func (s *Screen) AddRow(section string) error {
	return s.apply(AddRow{Section: section})
}

func (s *Screen) RemoveRow(section string, index int) error {
	return s.apply(RemoveRow{Section: section, Index: index})
}

// Lookup resolves the gate guarding field against the current form.
func (s *Screen) Lookup(ctx context.Context, field string) {
	g, ok := s.def.gateFor(field)
	if !ok || g.Lookup == nil {
		return
	}
	current := s.State().Form
	res, err := g.Lookup(ctx, s.backend, current)
	if err != nil {
		s.fail(err)
		res = Resolution{}
	}
	_ = s.apply(GateResolved{Field: field, Resolution: res})
}

// Submit validates the form and runs the submit steps in order. The first
// failing step stops the chain and leaves the form as entered.
func (s *Screen) Submit(ctx context.Context) {
	st := s.State()
	for _, g := range s.def.Gates {
		if st.Gates[g.Field].Pending {
			s.toast(LevelInfo, "Please wait for the lookup to finish")
			return
		}
	}
	current := s.def.withDerived(st.Form)
	if err := validate.First(current, s.def.Rules...); err != nil {
		s.fail(err)
		return
	}
	if s.def.LocalSubmit != "" {
		s.toast(LevelSuccess, s.def.LocalSubmit)
		_ = s.apply(Reset{})
		return
	}

	var last *backend.Envelope
	for _, step := range s.def.Submit {
		env, err := s.runStep(ctx, step, current)
		if err != nil {
			s.fail(err)
			return
		}
		last = env
	}

	msg := s.def.SuccessMessage
	if msg == "" && last != nil {
		msg = last.Message
	}
	if msg == "" {
		msg = "Saved successfully"
	}
	s.toast(LevelSuccess, msg)
	_ = s.apply(Reset{})
	s.Reload(ctx)
}

func (s *Screen) runStep(ctx context.Context, step Step, st form.State) (*backend.Envelope, error) {
	method := methodOrDefault(step.Method, http.MethodPost)
	mapping := step.Mapping
	if mapping == nil {
		mapping = s.def.Fields
	}

	if method == http.MethodGet {
		query := mapping.Query(st)
		if step.Build != nil {
			built, err := step.Build(st)
			if err != nil {
				return nil, err
			}
			q, ok := built.(url.Values)
			if !ok {
				return nil, errors.Errorf("GET step %s built %T, want url.Values", step.Path, built)
			}
			query = q
		}
		return s.backend.Do(ctx, method, step.Path, query, nil)
	}

	var body any = mapping.Apply(st)
	if step.Build != nil {
		built, err := step.Build(st)
		if err != nil {
			return nil, err
		}
		body = built
	}
	return s.backend.Do(ctx, method, step.Path, nil, body)
}

// Validate runs the rules against the form with derived values filled in.
func (d *Definition) Validate(st form.State) error {
	return validate.First(d.withDerived(st), d.Rules...)
}

func (d *Definition) withDerived(st form.State) form.State {
	for _, der := range d.Derived {
		st = st.Set(der.Name, form.Text(der.Compute(st)))
	}
	return st
}

// Reload fetches the list. On failure the previous rows stay.
func (s *Screen) Reload(ctx context.Context) {
	if s.def.List == nil {
		return
	}
	rows, err := s.fetchList(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.apply(ListLoaded{Rows: rows})
}

func (s *Screen) fetchList(ctx context.Context) ([]ListRow, error) {
	spec := s.def.List
	env, err := s.backend.Do(ctx, http.MethodGet, spec.Path, spec.Query, nil)
	if err != nil {
		return nil, err
	}
	recs, err := table(env, spec.Table)
	if err != nil {
		return nil, err
	}
	refs := s.State().Options
	rows := make([]ListRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, ListRow{
			Key:    rec.String(spec.Key),
			Cells:  s.def.cells(rec, refs),
			Record: rec,
		})
	}
	return rows, nil
}

func (d *Definition) cells(rec backend.Record, refs Refs) map[string]string {
	if d.List.Row != nil {
		return d.List.Row(rec, refs)
	}
	out := make(map[string]string, len(d.Columns))
	for _, col := range d.Columns {
		out[col.Key] = rec.String(col.Key)
	}
	return out
}

// Reset clears the form back to its defaults and leaves edit mode.
func (s *Screen) Reset() {
	_ = s.apply(Reset{})
}

func (s *Screen) Search(query string) {
	_ = s.apply(Search{Query: query})
}

// Edit loads the row identified by key back into the form and re-runs the
// lookup of every gate whose trigger came back filled.
func (s *Screen) Edit(ctx context.Context, key string) error {
	if s.def.Edit == nil {
		return errors.Wrap(ErrNotSupported, "edit")
	}
	st := s.State()
	row, ok := findRow(st.Rows, key)
	if !ok {
		return errors.Wrapf(ErrUnknownRow, "edit %q", key)
	}

	restored, err := s.restore(ctx, row, st.Options)
	if err != nil {
		s.fail(err)
		return nil
	}
	if err := s.apply(Edit{Key: key, Form: s.def.defaults(st.Options).Merge(restored)}); err != nil {
		return err
	}
	for _, g := range s.def.Gates {
		if !s.State().Form.Get(g.Trigger).IsBlank() {
			s.Lookup(ctx, g.Field)
		}
	}
	return nil
}

func (s *Screen) restore(ctx context.Context, row ListRow, refs Refs) (form.State, error) {
	spec := s.def.Edit
	if spec.Path == "" {
		return s.def.Fields.Restore(row.Record, refs), nil
	}
	env, err := s.backend.Do(ctx, http.MethodGet, spec.Path, url.Values{spec.Param: {row.Key}}, nil)
	if err != nil {
		return form.State{}, err
	}
	tables := make(map[string][]backend.Record, len(env.DataFetch))
	for name := range env.DataFetch {
		recs, err := table(env, name)
		if err != nil {
			return form.State{}, err
		}
		tables[name] = recs
	}
	if spec.Restore != nil {
		return spec.Restore(tables, refs)
	}
	recs := tables["table"]
	if len(recs) == 0 {
		return form.State{}, &backend.Error{Kind: backend.ErrApplication, Message: "Record not found"}
	}
	return s.def.Fields.Restore(recs[0], refs), nil
}

func (s *Screen) RequestDelete(key string) error {
	if s.def.Delete == nil {
		return errors.Wrap(ErrNotSupported, "delete")
	}
	return s.apply(RequestDelete{Key: key})
}

func (s *Screen) CancelDelete() {
	_ = s.apply(CancelDelete{})
}

// ConfirmDelete issues the pending delete. The dialog closes either way;
// the row is dropped only when the backend accepts the delete.
func (s *Screen) ConfirmDelete(ctx context.Context) error {
	st := s.State()
	if st.Delete.Phase != PhaseConfirming {
		return ErrNoPendingDelete
	}
	key := st.Delete.Pending
	spec := s.def.Delete

	var (
		env *backend.Envelope
		err error
	)
	method := methodOrDefault(spec.Method, http.MethodGet)
	if method == http.MethodGet {
		env, err = s.backend.Do(ctx, method, spec.Path, url.Values{spec.Param: {key}}, nil)
	} else {
		env, err = s.backend.Do(ctx, method, spec.Path, nil, map[string]any{spec.Param: keyValue(key)})
	}
	if err != nil {
		s.fail(err)
		return s.apply(FinishDelete{Key: key})
	}

	msg := env.Message
	if msg == "" {
		msg = "Deleted successfully"
	}
	s.toast(LevelSuccess, msg)
	if err := s.apply(FinishDelete{Key: key, Removed: true}); err != nil {
		return err
	}
	if !spec.LocalOnly {
		s.Reload(ctx)
	}
	return nil
}

// keyValue sends numeric ids as numbers.
func keyValue(key string) any {
	if n, err := strconv.ParseInt(key, 10, 64); err == nil {
		return n
	}
	return key
}

// Download is an export ready to be sent to the browser.
type Download struct {
	Name        string
	ContentType string
	Data        []byte
}

func (s *Screen) exportTable() export.Table {
	st := s.State()
	rows := make([]map[string]string, 0, len(st.Filtered))
	for _, row := range st.Filtered {
		rows = append(rows, row.Cells)
	}
	return export.Table{Title: s.def.Title, Columns: s.def.Columns, Rows: rows}
}

func (s *Screen) entity() string {
	if s.def.Entity != "" {
		return s.def.Entity
	}
	return s.def.Name
}

// ExportCSV serializes the filtered rows. On failure a toast is shown and
// ok is false.
func (s *Screen) ExportCSV() (Download, bool) {
	data, err := export.CSV(s.exportTable())
	if err != nil {
		s.toast(LevelError, "Failed to export CSV")
		return Download{}, false
	}
	return Download{Name: s.entity() + ".csv", ContentType: "text/csv; charset=utf-8", Data: data}, true
}

func (s *Screen) ExportPDF() (Download, bool) {
	data, err := export.PDF(s.exportTable())
	if err != nil {
		s.toast(LevelError, "Failed to export PDF")
		return Download{}, false
	}
	return Download{Name: s.entity() + ".pdf", ContentType: "application/pdf", Data: data}, true
}

// Template builds the bulk upload workbook for screens that offer one.
func (s *Screen) Template() (Download, error) {
	spec := s.def.Template
	if spec == nil {
		return Download{}, errors.Wrap(ErrNotSupported, "template")
	}
	data, err := export.Template(spec.Sheet, spec.Headers, spec.Sample)
	if err != nil {
		s.toast(LevelError, "Failed to build template")
		return Download{}, err
	}
	return Download{
		Name:        s.entity() + "-template.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

// Close stops pending lookups.
func (s *Screen) Close() {
	for _, d := range s.debouncer {
		d.stop()
	}
}
