package screenshandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmconsole/internal/app/workspace"
	"hrmconsole/internal/domain/masters"
	"hrmconsole/internal/domain/payroll"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/platform/backend/backendtest"
	"hrmconsole/internal/transport/http/middleware"
)

type viewBody struct {
	Success bool `json:"success"`
	Data    struct {
		View struct {
			Screen string         `json:"screen"`
			Form   map[string]any `json:"form"`
			Rows   []struct {
				Key   string            `json:"key"`
				Cells map[string]string `json:"cells"`
			} `json:"rows"`
			Total   int    `json:"total"`
			Query   string `json:"query"`
			Editing string `json:"editing"`
			Delete  struct {
				Phase   string `json:"phase"`
				Pending string `json:"pendingKey"`
			} `json:"delete"`
		} `json:"view"`
		Matched int            `json:"matched"`
		Toasts  []screen.Toast `json:"toasts"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, path, body string) (*httptest.ResponseRecorder, viewBody) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			c.cookie = ck
		}
	}
	var out viewBody
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func newRouter(t *testing.T, fake *backendtest.Server) http.Handler {
	t.Helper()
	registry, err := workspace.NewRegistry(masters.Definitions(), payroll.Definitions())
	require.NoError(t, err)
	sessions := workspace.NewManager(registry, fake.Client, 0, time.Hour, nil)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Session("test-secret", time.Hour, false))
	router.Route("/api/v1", func(r chi.Router) {
		NewHandler(sessions).RegisterRoutes(r)
	})
	return router
}

func bankBackend(t *testing.T) *backendtest.Server {
	fake := backendtest.New(t)
	fake.OK("/api/Master/GetBank", map[string]any{"table": []map[string]any{
		{"BankID": 1, "BankName": "State Bank", "IFSCCode": "SBIN0001234", "BranchName": "Camp"},
		{"BankID": 2, "BankName": "Axis", "IFSCCode": "UTIB0000001", "BranchName": "MG Road"},
	}})
	fake.Handle("/api/Master/SaveBank", backendtest.Envelope(1, "Bank saved", nil))
	fake.Handle("/api/Master/DeleteBank", backendtest.Envelope(1, "Deleted", nil))
	return fake
}

func TestMountReturnsViewAndList(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	rec, body := c.do(http.MethodPost, "/api/v1/screens/bank/mount", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, c.cookie)
	assert.True(t, body.Success)
	assert.Equal(t, "bank", body.Data.View.Screen)
	assert.Equal(t, 2, body.Data.View.Total)
	assert.Len(t, body.Data.View.Rows, 2)
	assert.Empty(t, body.Data.Toasts)
}

func TestListScreens(t *testing.T) {
	c := &client{t: t, router: newRouter(t, backendtest.New(t))}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/screens", nil)
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []workspace.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 17)
	assert.Equal(t, "location", body.Data[0].Name)
}

func TestUnknownScreenIsNotFound(t *testing.T) {
	c := &client{t: t, router: newRouter(t, backendtest.New(t))}
	rec, body := c.do(http.MethodGet, "/api/v1/screens/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "unknown_screen", body.Error.Code)
}

func TestFieldUpdatesAndMalformedInput(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	rec, body := c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"bankName","value":"Canara"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Canara", body.Data.View.Form["bankName"])

	rec, body = c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"ghost","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", body.Error.Code)

	rec, body = c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"bankID","value":"9"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body.Error.Code)

	rec, _ = c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"bankName","value":"x","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = c.do(http.MethodPost, "/api/v1/screens/bank/fields", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitValidationFailureIsAToast(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"bankName","value":"Canara"}`)
	rec, body := c.do(http.MethodPost, "/api/v1/screens/bank/submit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body.Data.Toasts, 1)
	assert.Equal(t, screen.LevelError, body.Data.Toasts[0].Level)
	assert.Equal(t, "IFSC Code is required", body.Data.Toasts[0].Message)
	assert.Empty(t, fake.CallsTo("/api/Master/SaveBank"))
	assert.Equal(t, "Canara", body.Data.View.Form["bankName"])
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"bankName","value":"Canara"}`)
	c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"ifsc","value":"CNRB0000123"}`)
	c.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"branchName","value":"Camp"}`)
	_, body := c.do(http.MethodPost, "/api/v1/screens/bank/submit", "")

	require.Len(t, body.Data.Toasts, 1)
	assert.Equal(t, "Bank saved", body.Data.Toasts[0].Message)
	assert.Equal(t, "", body.Data.View.Form["bankName"])
	saves := fake.CallsTo("/api/Master/SaveBank")
	require.Len(t, saves, 1)
	assert.Equal(t, "CNRB0000123", saves[0].Body["IFSCCode"])
}

func TestSearchAndPaging(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	_, body := c.do(http.MethodPost, "/api/v1/screens/bank/search", `{"query":"AXIS"}`)
	require.Len(t, body.Data.View.Rows, 1)
	assert.Equal(t, "2", body.Data.View.Rows[0].Key)
	assert.Equal(t, "AXIS", body.Data.View.Query)

	c.do(http.MethodPost, "/api/v1/screens/bank/search", `{"query":""}`)
	_, body = c.do(http.MethodGet, "/api/v1/screens/bank?limit=1&offset=1", "")
	require.Len(t, body.Data.View.Rows, 1)
	assert.Equal(t, "2", body.Data.View.Rows[0].Key)
	assert.Equal(t, 2, body.Data.Matched)
}

func TestEditLoadsRow(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	rec, body := c.do(http.MethodPost, "/api/v1/screens/bank/edit/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", body.Data.View.Editing)
	assert.Equal(t, "State Bank", body.Data.View.Form["bankName"])

	rec, _ = c.do(http.MethodPost, "/api/v1/screens/bank/edit/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFlow(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	rec, body := c.do(http.MethodPost, "/api/v1/screens/bank/delete/confirm", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_pending_delete", body.Error.Code)

	_, body = c.do(http.MethodPost, "/api/v1/screens/bank/delete/2", "")
	assert.Equal(t, "confirming", body.Data.View.Delete.Phase)
	assert.Equal(t, "2", body.Data.View.Delete.Pending)

	_, body = c.do(http.MethodPost, "/api/v1/screens/bank/delete/cancel", "")
	assert.Equal(t, "idle", body.Data.View.Delete.Phase)
	assert.Empty(t, fake.CallsTo("/api/Master/DeleteBank"))

	c.do(http.MethodPost, "/api/v1/screens/bank/delete/2", "")
	_, body = c.do(http.MethodPost, "/api/v1/screens/bank/delete/confirm", "")
	require.Len(t, body.Data.Toasts, 1)
	assert.Equal(t, "Deleted", body.Data.Toasts[0].Message)
	deletes := fake.CallsTo("/api/Master/DeleteBank")
	require.Len(t, deletes, 1)
	assert.Equal(t, "2", deletes[0].Query.Get("BankID"))
	assert.Len(t, fake.CallsTo("/api/Master/GetBank"), 2)
}

func TestSessionsDoNotShareScreens(t *testing.T) {
	fake := bankBackend(t)
	router := newRouter(t, fake)
	a := &client{t: t, router: router}
	b := &client{t: t, router: router}

	a.do(http.MethodPost, "/api/v1/screens/bank/fields", `{"path":"bankName","value":"Canara"}`)
	_, body := b.do(http.MethodGet, "/api/v1/screens/bank", "")
	assert.Equal(t, "", body.Data.View.Form["bankName"])
	_, body = a.do(http.MethodGet, "/api/v1/screens/bank", "")
	assert.Equal(t, "Canara", body.Data.View.Form["bankName"])
}

func TestExportCSV(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	c.do(http.MethodPost, "/api/v1/screens/bank/search", `{"query":"camp"}`)
	rec, _ := c.do(http.MethodGet, "/api/v1/screens/bank/export.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="banks.csv"`)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "SBIN0001234")
}

func TestTemplateOnlyWhereOffered(t *testing.T) {
	fake := bankBackend(t)
	fake.OK("/api/Payroll/GetAllowanceHead", nil)
	fake.OK("/api/Payroll/GetAllowanceList", nil)
	c := &client{t: t, router: newRouter(t, fake)}

	rec, _ := c.do(http.MethodGet, "/api/v1/screens/bank/template.xlsx", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = c.do(http.MethodGet, "/api/v1/screens/allowance/template.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestRemoveRowRejectsBadIndex(t *testing.T) {
	fake := bankBackend(t)
	c := &client{t: t, router: newRouter(t, fake)}

	rec, body := c.do(http.MethodDelete, "/api/v1/screens/bank/rows/items/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body.Error.Code)

	rec, _ = c.do(http.MethodPost, "/api/v1/screens/bank/rows/items", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
