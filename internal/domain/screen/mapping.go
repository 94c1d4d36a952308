package screen

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/platform/backend"
)

// Conv says how a form value is written into an API payload.
type Conv uint8

const (
	AsText Conv = iota
	AsInt
	AsNumber
	AsOption
	AsOptionInt
	AsFlag
	AsFlagInt
	AsDate
	AsBase64
	AsRows
)

// FieldMap binds one form field to one API field.
type FieldMap struct {
	Form string
	API  string
	As   Conv
	// Ref names the option list used to restore option fields.
	Ref  string
	Noun string
	// Rows and Skip apply to AsRows: each row is mapped through Rows, and
	// rows whose Skip field is blank are left out.
	Rows Mapping
	Skip string
}

// Mapping is the fixed table between form fields and API fields of one screen.
type Mapping []FieldMap

// Apply builds the payload for a form state.
func (m Mapping) Apply(s form.State) map[string]any {
	out := make(map[string]any, len(m))
	for _, fm := range m {
		out[fm.API] = fm.convert(s)
	}
	return out
}

// Query builds GET parameters; nil payload values are left out.
func (m Mapping) Query(s form.State) url.Values {
	q := url.Values{}
	for key, value := range m.Apply(s) {
		if value == nil {
			continue
		}
		q.Set(key, fmt.Sprint(value))
	}
	return q
}

func (fm FieldMap) convert(s form.State) any {
	v := s.Get(fm.Form)
	switch fm.As {
	case AsInt:
		return form.ParseDecimal(v.String()).IntPart()
	case AsNumber:
		f, _ := form.ParseDecimal(v.String()).Float64()
		return f
	case AsOption:
		return v.Option.Value
	case AsOptionInt:
		return form.ParseDecimal(v.Option.Value).IntPart()
	case AsFlag:
		return v.Flag
	case AsFlagInt:
		if v.Flag {
			return 1
		}
		return 0
	case AsDate:
		if date := form.NormalizeDate(v.String()); date != "" {
			return date
		}
		return nil
	case AsBase64:
		if v.File == nil || len(v.File.Data) == 0 {
			return nil
		}
		return v.File.Base64()
	case AsRows:
		rows := make([]map[string]any, 0, len(v.Rows))
		for _, row := range v.Rows {
			if fm.Skip != "" && row.Get(fm.Skip).IsBlank() {
				continue
			}
			rows = append(rows, fm.Rows.Apply(row))
		}
		return rows
	}
	return strings.TrimSpace(v.String())
}

// Restore is the inverse of Apply for one backend record. Row sections are
// not restored here; they come from separate tables.
func (m Mapping) Restore(rec backend.Record, refs Refs) form.State {
	values := make(map[string]form.Value, len(m))
	for _, fm := range m {
		if fm.As == AsRows {
			continue
		}
		values[fm.Form] = fm.restore(rec, refs)
	}
	return form.New(values)
}

// RestoreRows restores each record as one row.
func (m Mapping) RestoreRows(recs []backend.Record, refs Refs) []form.State {
	rows := make([]form.State, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, m.Restore(rec, refs))
	}
	return rows
}

func (fm FieldMap) restore(rec backend.Record, refs Refs) form.Value {
	raw := rec.String(fm.API)
	switch fm.As {
	case AsOption, AsOptionInt:
		if fm.As == AsOptionInt && raw == "0" {
			raw = ""
		}
		ref := fm.Ref
		if ref == "" {
			ref = fm.Form
		}
		noun := fm.Noun
		if noun == "" {
			noun = fm.Form
		}
		return refs.Choice(ref, raw, noun)
	case AsFlag, AsFlagInt:
		return form.Flag(rec.Bool(fm.API))
	case AsDate:
		return form.Text(form.NormalizeDate(raw))
	case AsBase64:
		if raw == "" {
			return form.Value{}
		}
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return form.Value{}
		}
		return form.Attachment(form.NewFile(fm.Form, http.DetectContentType(data), data))
	}
	return form.Text(raw)
}
