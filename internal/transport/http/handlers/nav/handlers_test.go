package navhandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmconsole/internal/domain/nav"
)

func TestMenuIsServed(t *testing.T) {
	menu, err := nav.Load("")
	require.NoError(t, err)
	menu = menu.Filter(func(screen string) bool { return screen == "bank" })

	router := chi.NewRouter()
	NewHandler(menu).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nav", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool     `json:"success"`
		Data    nav.Menu `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Sections, 1)
	assert.Equal(t, []string{"bank"}, body.Data.Screens())
}
