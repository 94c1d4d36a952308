package screen

import (
	"strings"

	"golang.org/x/text/cases"

	"hrmconsole/internal/domain/form"
)

var fold = cases.Fold()

// filter keeps rows whose search columns contain query, ignoring case. An
// empty query keeps every row.
func (d *Definition) filter(rows []ListRow, query string) []ListRow {
	q := strings.TrimSpace(query)
	if q == "" {
		out := make([]ListRow, len(rows))
		copy(out, rows)
		return out
	}
	needle := fold.String(q)
	columns := d.searchColumns()
	out := make([]ListRow, 0, len(rows))
	for _, row := range rows {
		for _, col := range columns {
			if strings.Contains(fold.String(row.Cells[col]), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func (d *Definition) searchColumns() []string {
	if d.List != nil && len(d.List.Search) > 0 {
		return d.List.Search
	}
	cols := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		cols = append(cols, c.Key)
	}
	return cols
}

// View is the JSON document the browser renders for one screen.
type View struct {
	Screen   string               `json:"screen"`
	Title    string               `json:"title"`
	Form     form.State           `json:"form"`
	Derived  map[string]string    `json:"derived"`
	ReadOnly []string             `json:"readOnly"`
	Options  Refs                 `json:"options"`
	Gates    map[string]GateState `json:"gates"`
	Columns  []Column             `json:"columns"`
	Rows     []ListRow            `json:"rows"`
	Total    int                  `json:"total"`
	Query    string               `json:"query"`
	Editing  string               `json:"editing,omitempty"`
	Delete   DeleteState          `json:"delete"`
	Exports  bool                 `json:"exports"`
	Template bool                 `json:"template"`
}

func (s *Screen) View() View {
	st := s.State()
	derived := make(map[string]string, len(s.def.Derived))
	for _, der := range s.def.Derived {
		derived[der.Name] = der.Compute(st.Form)
	}
	readOnly := append([]string{}, s.def.ReadOnly...)
	columns := s.def.Columns
	if columns == nil {
		columns = []Column{}
	}
	return View{
		Screen:   s.def.Name,
		Title:    s.def.Title,
		Form:     st.Form,
		Derived:  derived,
		ReadOnly: readOnly,
		Options:  st.Options,
		Gates:    st.Gates,
		Columns:  columns,
		Rows:     st.Filtered,
		Total:    len(st.Rows),
		Query:    st.Query,
		Editing:  st.Editing,
		Delete:   st.Delete,
		Exports:  s.def.List != nil && len(s.def.Columns) > 0,
		Template: s.def.Template != nil,
	}
}
