package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmconsole/internal/domain/form"
)

func rowsDefinition() *Definition {
	blank := form.New(map[string]form.Value{"head": form.Text(""), "rate": form.Text("")})
	return &Definition{
		Name: "rows",
		Defaults: func(Refs) form.State {
			return form.New(map[string]form.Value{
				"basic": form.Text(""),
				"lines": form.Rows(blank),
			})
		},
		Sections: map[string]form.State{"lines": blank},
		Derived: []Derived{{Name: "total", Compute: func(s form.State) string {
			return form.Sum(s, "basic").Add(form.SumRows(s, "lines", "rate")).String()
		}}},
	}
}

func TestReduceRows(t *testing.T) {
	def := rowsDefinition()
	st := def.Initial()

	st, err := def.Reduce(st, AddRow{Section: "lines"})
	require.NoError(t, err)
	assert.Len(t, st.Form.Rows("lines"), 2)

	st, err = def.Reduce(st, SetField{Path: form.RowField("lines", 1, "rate"), Value: form.Text("300")})
	require.NoError(t, err)
	st, err = def.Reduce(st, SetField{Path: form.Field("basic"), Value: form.Text("5000")})
	require.NoError(t, err)
	assert.Equal(t, "5300", def.withDerived(st.Form).Text("total"))

	_, err = def.Reduce(st, RemoveRow{Section: "lines", Index: 0})
	assert.ErrorIs(t, err, form.ErrProtectedRow)
	_, err = def.Reduce(st, AddRow{Section: "other"})
	assert.ErrorIs(t, err, ErrUnknownSection)

	st, err = def.Reduce(st, RemoveRow{Section: "lines", Index: 1})
	require.NoError(t, err)
	assert.Len(t, st.Form.Rows("lines"), 1)
	assert.Equal(t, "5000", def.withDerived(st.Form).Text("total"))
}

func TestDerivedFieldsAreReadOnly(t *testing.T) {
	def := rowsDefinition()
	st := def.Initial()
	st.Form = st.Form.Set("total", form.Text("0"))

	_, err := def.Reduce(st, SetField{Path: form.Field("total"), Value: form.Text("9")})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestOptionsLoadedNeverNil(t *testing.T) {
	def := rowsDefinition()
	st, err := def.Reduce(def.Initial(), OptionsLoaded{Key: "branch"})
	require.NoError(t, err)
	assert.NotNil(t, st.Options["branch"])
	assert.Empty(t, st.Options["branch"])
}

func TestResetRestoresDefaults(t *testing.T) {
	def := rowsDefinition()
	st := def.Initial()
	st, _ = def.Reduce(st, AddRow{Section: "lines"})
	st, _ = def.Reduce(st, SetField{Path: form.Field("basic"), Value: form.Text("1")})
	st.Editing = "3"

	st, err := def.Reduce(st, Reset{})
	require.NoError(t, err)
	assert.Equal(t, "", st.Form.Text("basic"))
	assert.Len(t, st.Form.Rows("lines"), 1)
	assert.Equal(t, "", st.Editing)
}
